package chargeback

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
	svc "github.com/elC0mpa/ecs-chargeback/service"
)

var utilizationMetrics = []string{model.MetricCPUUtilization, model.MetricMemoryUtilization}

// Aggregator fills in the peak CPU and memory utilization of services
type Aggregator struct {
	metrics  svc.MetricsService
	lookback time.Duration
	period   int32
	stat     string
	logger   *slog.Logger
}

func NewAggregator(metrics svc.MetricsService, opts Options, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		metrics:  metrics,
		lookback: opts.UtilizationLookback,
		period:   int32(opts.UtilizationPeriod / time.Second),
		stat:     opts.UtilizationStat,
		logger:   logger,
	}
}

type queryTarget struct {
	service int
	metric  string
}

// Aggregate sets CPUUtilization and MemoryUtilization of every service to
// the highest sample seen in the lookback window. Services without samples
// keep their current values.
func (a *Aggregator) Aggregate(ctx context.Context, cluster string, services []model.Service) error {
	if len(services) == 0 {
		return nil
	}

	queries := make([]model.MetricQuery, 0, len(services)*len(utilizationMetrics))
	targets := make(map[string]queryTarget, cap(queries))
	for i, s := range services {
		for _, metric := range utilizationMetrics {
			id := fmt.Sprintf("m%d", len(queries))
			targets[id] = queryTarget{service: i, metric: metric}
			queries = append(queries, model.MetricQuery{
				ID:      id,
				Cluster: cluster,
				Service: s.Name,
				Metric:  metric,
			})
		}
	}

	series, err := a.metrics.GetMetricSeries(ctx, queries, a.lookback, a.period, a.stat)
	if err != nil {
		return fmt.Errorf("utilization of %s: %w", cluster, err)
	}

	peaks := make(map[string]float64, len(targets))
	for _, s := range series {
		target, ok := targets[s.ID]
		if !ok {
			a.logger.Warn("ignoring metric series for unknown query", "cluster", cluster, "id", s.ID, "label", s.Label)
			continue
		}

		if s.Status != model.MetricStatusComplete {
			a.logger.Warn("incomplete utilization samples",
				"cluster", cluster,
				"service", services[target.service].Name,
				"metric", target.metric,
				"status", s.Status,
				"messages", s.Messages)
		}

		if len(s.Values) == 0 {
			continue
		}
		peak := slices.Max(s.Values)
		if current, seen := peaks[s.ID]; !seen || peak > current {
			peaks[s.ID] = peak
		}
	}

	for id, peak := range peaks {
		target := targets[id]
		switch target.metric {
		case model.MetricCPUUtilization:
			services[target.service].CPUUtilization = peak
		case model.MetricMemoryUtilization:
			services[target.service].MemoryUtilization = peak
		}
	}

	return nil
}
