package promsink

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "ecs_chargeback"

var serviceLabels = []string{"cluster", "service"}

// NewService registers the chargeback gauges on a private registry. When
// pushgatewayURL is set every Emit also pushes the registry there.
func NewService(pushgatewayURL string) *service {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	s := &service{
		registry: reg,

		cpuReservation: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_reservation_units",
			Help:      "CPU units reserved by the running tasks of a service",
		}, serviceLabels),

		memoryReservation: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_reservation_mib",
			Help:      "Memory in MiB reserved by the running tasks of a service",
		}, serviceLabels),

		cpuUtilization: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_utilization_pct",
			Help:      "Peak CPU utilization percentage over the utilization lookback",
		}, serviceLabels),

		memoryUtilization: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_utilization_pct",
			Help:      "Peak memory utilization percentage over the utilization lookback",
		}, serviceLabels),

		hourlyCost: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hourly_cost",
			Help:      "Hourly cost of the capacity reserved by a service",
		}, serviceLabels),

		hourlyWaste: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hourly_waste",
			Help:      "Hourly cost of the reserved but unused capacity of a service",
		}, serviceLabels),

		// label names are fixed per vector, so the free form service tags
		// travel as a single sorted key=value list
		serviceInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "service_info",
			Help:      "Always 1, carries the tags of a service",
		}, []string{"cluster", "service", "tags"}),

		hourlyVCPUCost: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_hourly_vcpu_cost",
			Help:      "Usage weighted hourly cost of one vCPU in a cluster",
		}, []string{"cluster"}),

		lastRun: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_report_timestamp_seconds",
			Help:      "Unix time of the last report computed for a cluster",
		}, []string{"cluster"}),
	}

	if pushgatewayURL != "" {
		s.pusher = push.New(pushgatewayURL, namespace).Gatherer(reg)
	}

	return s
}

func (s *service) Registry() *prometheus.Registry {
	return s.registry
}

// Emit replaces every series of the report's cluster with its current values
func (s *service) Emit(ctx context.Context, report *model.ClusterReport) error {
	if report == nil {
		return nil
	}

	clusterOnly := prometheus.Labels{"cluster": report.Cluster}
	for _, vec := range []*prometheus.GaugeVec{s.cpuReservation, s.memoryReservation, s.cpuUtilization, s.memoryUtilization, s.hourlyCost, s.hourlyWaste, s.serviceInfo} {
		vec.DeletePartialMatch(clusterOnly)
	}

	for _, cost := range report.Services {
		labels := prometheus.Labels{"cluster": report.Cluster, "service": cost.Service}
		s.cpuReservation.With(labels).Set(float64(cost.CPUReservation))
		s.memoryReservation.With(labels).Set(float64(cost.MemoryReservation))
		s.cpuUtilization.With(labels).Set(cost.CPUUtilization)
		s.memoryUtilization.With(labels).Set(cost.MemoryUtilization)
		s.hourlyCost.With(labels).Set(cost.HourlyCost)
		s.hourlyWaste.With(labels).Set(cost.HourlyWaste)
		s.serviceInfo.WithLabelValues(report.Cluster, cost.Service, joinTags(cost.Tags)).Set(1)
	}
	s.hourlyVCPUCost.With(clusterOnly).Set(report.Rate.HourlyVCPUCost)
	s.lastRun.With(clusterOnly).Set(float64(report.GeneratedAt.Unix()))

	if s.pusher == nil {
		return nil
	}
	if err := s.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics for %s: %w", report.Cluster, err)
	}

	return nil
}

func joinTags(tags []model.Tag) string {
	pairs := make([]string, 0, len(tags))
	for _, t := range tags {
		pairs = append(pairs, t.Key+"="+t.Value)
	}
	slices.Sort(pairs)
	return strings.Join(pairs, ",")
}
