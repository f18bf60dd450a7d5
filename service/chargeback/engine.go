package chargeback

import (
	"context"
	"log/slog"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
	svc "github.com/elC0mpa/ecs-chargeback/service"
)

// Dependencies are the collaborators an Engine reads from
type Dependencies struct {
	Clusters svc.ClusterService
	Metrics  svc.MetricsService
	Billing  svc.BillingService
	Specs    svc.InstanceSpecService
	Cache    IndexCache
}

// Engine computes cluster reports one cluster at a time
type Engine struct {
	clusters   svc.ClusterService
	aggregator *Aggregator
	builder    *IndexBuilder
	cache      IndexCache
	logger     *slog.Logger
	now        func() time.Time
}

func NewEngine(deps Dependencies, opts Options, logger *slog.Logger) *Engine {
	return &Engine{
		clusters:   deps.Clusters,
		aggregator: NewAggregator(deps.Metrics, opts, logger),
		builder:    NewIndexBuilder(deps.Billing, deps.Specs, opts.ClusterTagKey, opts.CostLookback),
		cache:      deps.Cache,
		logger:     logger,
		now:        time.Now,
	}
}

func (e *Engine) ListClusters(ctx context.Context) ([]string, error) {
	return e.clusters.ListClusters(ctx)
}

// Report prices every service of cluster. Clusters without services are
// reported empty without querying billing data.
func (e *Engine) Report(ctx context.Context, name string) (*model.ClusterReport, error) {
	cluster := NewCluster(name, e.clusters, e.aggregator)
	if err := cluster.EnsureLoaded(ctx); err != nil {
		return nil, err
	}

	report := &model.ClusterReport{
		Cluster:     name,
		Services:    []model.ServiceCost{},
		GeneratedAt: e.now().UTC(),
	}

	services := cluster.Services()
	if len(services) == 0 {
		e.logger.Info("cluster has no services", "cluster", name)
		return report, nil
	}

	calculator, err := NewCalculator(ctx, name, e.builder, e.cache, e.logger)
	if err != nil {
		return nil, err
	}

	report.Rate = calculator.Rate()
	report.InstanceTypes = calculator.InstanceTypes()
	for _, s := range services {
		report.Services = append(report.Services, calculator.ServiceCost(s))
	}

	return report, nil
}
