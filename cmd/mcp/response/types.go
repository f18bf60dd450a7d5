package response

// AccountInfo represents the AWS account identity
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// ClusterList lists the ECS clusters of the configured region
type ClusterList struct {
	Clusters []string `json:"clusters"`
	Count    int      `json:"count"`
}

// Tag is a service tag
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ServiceCost is the hourly chargeback of one service
type ServiceCost struct {
	Cluster           string  `json:"cluster"`
	Service           string  `json:"service"`
	Tags              []Tag   `json:"tags"`
	CPUReservation    int64   `json:"cpu_reservation_units"`
	MemoryReservation int64   `json:"memory_reservation_mib"`
	CPUUtilization    float64 `json:"cpu_utilization_pct"`
	MemoryUtilization float64 `json:"memory_utilization_pct"`
	MemoryPerVCPU     float64 `json:"memory_per_vcpu_mib"`
	HourlyCost        float64 `json:"hourly_cost"`
	HourlyWaste       float64 `json:"hourly_waste"`
	WastePercent      float64 `json:"waste_percent"`
}

// InstanceType is one entry of the cost index a cluster rate is derived from
type InstanceType struct {
	Name   string  `json:"name"`
	Cost   float64 `json:"cost"`
	Usage  float64 `json:"usage_hours"`
	VCPUs  int32   `json:"vcpus"`
	Memory int64   `json:"memory_mib"`
}

// ClusterCosts is the chargeback of every service of a cluster
type ClusterCosts struct {
	Cluster          string         `json:"cluster"`
	GeneratedAt      string         `json:"generated_at"`
	HourlyVCPUCost   float64        `json:"hourly_vcpu_cost"`
	MemoryPerVCPU    float64        `json:"memory_per_vcpu_mib"`
	TotalHourlyCost  float64        `json:"total_hourly_cost"`
	TotalHourlyWaste float64        `json:"total_hourly_waste"`
	InstanceTypes    []InstanceType `json:"instance_types"`
	Services         []ServiceCost  `json:"services"`
}
