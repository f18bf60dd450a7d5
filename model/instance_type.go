package model

// InstanceTypeRecord summarizes billing, usage and hardware specs for one
// instance type over the cost lookback window.
type InstanceTypeRecord struct {
	Name   string  `json:"name"`
	Cost   float64 `json:"cost"`
	Usage  float64 `json:"usage"`
	VCPUs  int32   `json:"vcpus"`
	Memory int64   `json:"memory"`
}

// UsageGroup is a single grouped billing row for an instance type
type UsageGroup struct {
	InstanceType string
	Cost         float64
	Usage        float64
}

// InstanceSpec contains the static hardware specs of an instance type.
// Memory is expressed in MiB.
type InstanceSpec struct {
	Name   string
	VCPUs  int32
	Memory int64
}

// Rate holds the cluster-wide scalars derived from the instance type index
type Rate struct {
	HourlyVCPUCost float64 `json:"hourly_vcpu_cost"`
	MemoryPerVCPU  float64 `json:"memory_per_vcpu"`
}
