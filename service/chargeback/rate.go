package chargeback

import "github.com/elC0mpa/ecs-chargeback/model"

// Instance types without a known vCPU count cannot be expressed per vCPU and
// are left out of both rates, numerator and weight alike.

// HourlyVCPUCost returns the usage weighted hourly cost of one vCPU:
// sum(cost/vcpus) / sum(usage). It is 0 when there is no usage.
func HourlyVCPUCost(records []model.InstanceTypeRecord) float64 {
	weightedCost := 0.0
	totalUsage := 0.0

	for _, r := range records {
		if r.VCPUs <= 0 {
			continue
		}
		totalUsage += r.Usage
		weightedCost += r.Cost / float64(r.VCPUs)
	}

	if totalUsage == 0 {
		return 0
	}
	return weightedCost / totalUsage
}

// MemoryPerVCPU returns the usage weighted MiB of memory per vCPU across the
// instance types. It is 0 when there is no usage.
func MemoryPerVCPU(records []model.InstanceTypeRecord) float64 {
	weightedRatio := 0.0
	totalUsage := 0.0

	for _, r := range records {
		if r.VCPUs <= 0 {
			continue
		}
		totalUsage += r.Usage
		weightedRatio += r.Usage * float64(r.Memory) / float64(r.VCPUs)
	}

	if totalUsage == 0 {
		return 0
	}
	return weightedRatio / totalUsage
}

func NewRate(records []model.InstanceTypeRecord) model.Rate {
	return model.Rate{
		HourlyVCPUCost: HourlyVCPUCost(records),
		MemoryPerVCPU:  MemoryPerVCPU(records),
	}
}
