package response

import (
	"sort"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    info.Provider,
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

func ConvertClusterList(clusters []string) *ClusterList {
	if clusters == nil {
		clusters = []string{}
	}
	return &ClusterList{Clusters: clusters, Count: len(clusters)}
}

// ConvertServiceCost converts model.ServiceCost to response.ServiceCost
func ConvertServiceCost(cost model.ServiceCost) ServiceCost {
	tags := make([]Tag, 0, len(cost.Tags))
	for _, t := range cost.Tags {
		tags = append(tags, Tag{Key: t.Key, Value: t.Value})
	}

	wastePercent := 0.0
	if cost.HourlyCost > 0 {
		wastePercent = cost.HourlyWaste / cost.HourlyCost * 100
	}

	return ServiceCost{
		Cluster:           cost.Cluster,
		Service:           cost.Service,
		Tags:              tags,
		CPUReservation:    cost.CPUReservation,
		MemoryReservation: cost.MemoryReservation,
		CPUUtilization:    cost.CPUUtilization,
		MemoryUtilization: cost.MemoryUtilization,
		MemoryPerVCPU:     cost.MemoryPerVCPU,
		HourlyCost:        cost.HourlyCost,
		HourlyWaste:       cost.HourlyWaste,
		WastePercent:      wastePercent,
	}
}

// ConvertClusterReport converts model.ClusterReport to response.ClusterCosts,
// services sorted by hourly cost descending
func ConvertClusterReport(report *model.ClusterReport) *ClusterCosts {
	if report == nil {
		return nil
	}

	services := make([]ServiceCost, 0, len(report.Services))
	for _, s := range report.Services {
		services = append(services, ConvertServiceCost(s))
	}
	sort.SliceStable(services, func(i, j int) bool {
		return services[i].HourlyCost > services[j].HourlyCost
	})

	instanceTypes := make([]InstanceType, 0, len(report.InstanceTypes))
	for _, r := range report.InstanceTypes {
		instanceTypes = append(instanceTypes, InstanceType{
			Name:   r.Name,
			Cost:   r.Cost,
			Usage:  r.Usage,
			VCPUs:  r.VCPUs,
			Memory: r.Memory,
		})
	}

	return &ClusterCosts{
		Cluster:          report.Cluster,
		GeneratedAt:      report.GeneratedAt.UTC().Format(time.RFC3339),
		HourlyVCPUCost:   report.Rate.HourlyVCPUCost,
		MemoryPerVCPU:    report.Rate.MemoryPerVCPU,
		TotalHourlyCost:  report.TotalHourlyCost(),
		TotalHourlyWaste: report.TotalHourlyWaste(),
		InstanceTypes:    instanceTypes,
		Services:         services,
	}
}

// FindService returns the cost of the named service in report
func FindService(report *model.ClusterReport, service string) (*ServiceCost, bool) {
	if report == nil {
		return nil, false
	}
	for _, s := range report.Services {
		if s.Service == service {
			converted := ConvertServiceCost(s)
			return &converted, true
		}
	}
	return nil, false
}
