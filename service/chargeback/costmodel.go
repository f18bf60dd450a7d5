package chargeback

import "github.com/elC0mpa/ecs-chargeback/model"

// HourlyReservationCost charges the reserved vCPUs at the cluster rate. A
// service reserving more memory per vCPU than the cluster baseline pays
// proportionally more; one reserving less is never discounted.
func HourlyReservationCost(s model.Service, rate model.Rate) float64 {
	if rate.MemoryPerVCPU == 0 {
		return 0
	}

	vcpus := float64(s.CPUReservation()) / 1024
	memoryMultiplier := max(1, s.MemoryPerVCPU()/rate.MemoryPerVCPU)
	return rate.HourlyVCPUCost * vcpus * memoryMultiplier
}

// HourlyUtilizationCost is HourlyReservationCost scaled down by the observed
// CPU and memory utilization.
func HourlyUtilizationCost(s model.Service, rate model.Rate) float64 {
	if rate.MemoryPerVCPU == 0 {
		return 0
	}

	vcpus := (s.CPUUtilization / 100) * (float64(s.CPUReservation()) / 1024)
	memoryMultiplier := max(1, (s.MemoryUtilization/100)*(s.MemoryPerVCPU()/rate.MemoryPerVCPU))
	return rate.HourlyVCPUCost * vcpus * memoryMultiplier
}
