package model

// Tag is a key/value label attached to an ECS service
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Service represents one running ECS service, its reservation and the peak
// utilization observed during the utilization lookback window.
type Service struct {
	Name                  string
	TaskCount             int32
	TaskCPUReservation    int64
	TaskMemoryReservation int64
	CPUUtilization        float64
	MemoryUtilization     float64
	Tags                  []Tag
}

// CPUReservation returns the CPU units reserved by all running tasks
func (s Service) CPUReservation() int64 {
	return int64(s.TaskCount) * s.TaskCPUReservation
}

// MemoryReservation returns the memory (MiB) reserved by all running tasks
func (s Service) MemoryReservation() int64 {
	return int64(s.TaskCount) * s.TaskMemoryReservation
}

// MemoryPerVCPU returns the reserved MiB per reserved vCPU. Services without a
// CPU reservation have no ratio and report 0.
func (s Service) MemoryPerVCPU() float64 {
	if s.TaskCPUReservation == 0 {
		return 0
	}
	return 1024 * float64(s.TaskMemoryReservation) / float64(s.TaskCPUReservation)
}
