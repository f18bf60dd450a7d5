package model

import "time"

// ServiceCost is the chargeback result for a single service
type ServiceCost struct {
	Cluster           string  `json:"cluster"`
	Service           string  `json:"service"`
	Tags              []Tag   `json:"tags"`
	CPUReservation    int64   `json:"cpu_reservation"`
	MemoryReservation int64   `json:"memory_reservation"`
	CPUUtilization    float64 `json:"cpu_utilization"`
	MemoryUtilization float64 `json:"memory_utilization"`
	MemoryPerVCPU     float64 `json:"memory_per_vcpu"`
	HourlyCost        float64 `json:"hourly_cost"`
	HourlyWaste       float64 `json:"hourly_waste"`
}

// ClusterReport contains every service cost of a cluster together with the
// cluster-wide rate used to compute them
type ClusterReport struct {
	Cluster       string               `json:"cluster"`
	Rate          Rate                 `json:"rate"`
	InstanceTypes []InstanceTypeRecord `json:"instance_types"`
	Services      []ServiceCost        `json:"services"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// TotalHourlyCost sums the hourly cost of every service in the report
func (r ClusterReport) TotalHourlyCost() float64 {
	total := 0.0
	for _, s := range r.Services {
		total += s.HourlyCost
	}
	return total
}

// TotalHourlyWaste sums the hourly waste of every service in the report
func (r ClusterReport) TotalHourlyWaste() float64 {
	total := 0.0
	for _, s := range r.Services {
		total += s.HourlyWaste
	}
	return total
}
