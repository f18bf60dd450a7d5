package main

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
)

type emitter interface {
	EmitWorkflow(ctx context.Context, clusters []string) ([]model.ClusterReport, error)
}

// runner executes the emit workflow on schedule and keeps the last report of
// every cluster for the API. At most one run is active at a time.
type runner struct {
	orchestrator emitter
	clusters     []string
	logger       *slog.Logger
	now          func() time.Time

	running sync.Mutex

	mu      sync.RWMutex
	reports map[string]model.ClusterReport
	lastRun time.Time
	lastErr error
}

func newRunner(orchestrator emitter, clusters []string, logger *slog.Logger) *runner {
	return &runner{
		orchestrator: orchestrator,
		clusters:     clusters,
		logger:       logger,
		now:          time.Now,
		reports:      map[string]model.ClusterReport{},
	}
}

// Run reports false when a previous run is still in progress
func (r *runner) Run(ctx context.Context) bool {
	if !r.running.TryLock() {
		r.logger.Warn("previous run still in progress, skipping")
		return false
	}
	defer r.running.Unlock()

	started := r.now()
	reports, err := r.orchestrator.EmitWorkflow(ctx, r.clusters)
	if err != nil {
		r.logger.Error("chargeback run finished with errors", "error", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, report := range reports {
		r.reports[report.Cluster] = report
	}
	r.lastRun = started
	r.lastErr = err

	r.logger.Info("chargeback run complete", "clusters", len(reports), "duration", r.now().Sub(started))
	return true
}

func (r *runner) Reports() []model.ClusterReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]model.ClusterReport, 0, len(r.reports))
	for _, report := range r.reports {
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Cluster < reports[j].Cluster
	})
	return reports
}

func (r *runner) Report(cluster string) (model.ClusterReport, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[cluster]
	return report, ok
}

func (r *runner) Status() (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastRun, r.lastErr
}
