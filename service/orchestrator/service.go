package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/elC0mpa/ecs-chargeback/model"
	svc "github.com/elC0mpa/ecs-chargeback/service"
	"github.com/elC0mpa/ecs-chargeback/service/config"
	"github.com/elC0mpa/ecs-chargeback/utils"
)

// NewService wires the workflows. identityService and sink may be nil when
// the caller never uses the workflows that need them.
func NewService(engine ReportEngine, identityService svc.IdentityService, sink svc.MetricSink, logger *slog.Logger) *service {
	return &service{
		engine:          engine,
		identityService: identityService,
		sink:            sink,
		logger:          logger,
		out:             os.Stdout,
	}
}

func (s *service) SetOutput(w io.Writer) {
	s.out = w
}

func (s *service) Orchestrate(ctx context.Context, flags model.Flags) error {
	clusters := config.SplitList(flags.Clusters)

	if flags.Emit {
		_, err := s.EmitWorkflow(ctx, clusters)
		return err
	}

	if flags.JSON {
		return s.JSONWorkflow(ctx, clusters)
	}

	return s.TableWorkflow(ctx, clusters, flags.Chart, flags.Instances)
}

// Run computes a report for every cluster, or for every cluster in the
// region when clusters is empty. A failing cluster does not stop the others:
// its error is logged and joined into the returned error.
func (s *service) Run(ctx context.Context, clusters []string) ([]model.ClusterReport, error) {
	if len(clusters) == 0 {
		listed, err := s.engine.ListClusters(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing clusters: %w", err)
		}
		clusters = listed
	}

	reports := make([]model.ClusterReport, 0, len(clusters))
	var errs []error

	for _, cluster := range clusters {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		report, err := s.engine.Report(ctx, cluster)
		if err != nil {
			s.logger.Error("skipping cluster", "cluster", cluster, "error", err)
			errs = append(errs, fmt.Errorf("cluster %s: %w", cluster, err))
			continue
		}

		s.logger.Info("computed cluster chargeback",
			"cluster", cluster,
			"services", len(report.Services),
			"hourly_cost", report.TotalHourlyCost(),
			"hourly_waste", report.TotalHourlyWaste())
		reports = append(reports, *report)
	}

	return reports, errors.Join(errs...)
}

func (s *service) TableWorkflow(ctx context.Context, clusters []string, chart, instances bool) error {
	reports, runErr := s.Run(ctx, clusters)

	accountID := ""
	if s.identityService != nil {
		account, err := s.identityService.GetAccountInfo(ctx)
		if err != nil {
			s.logger.Warn("unable to resolve account", "error", err)
		} else {
			accountID = account.AccountID
		}
	}

	utils.StopSpinner()

	for _, report := range reports {
		if len(report.Services) == 0 {
			continue
		}

		utils.DrawChargebackTable(report)
		if instances {
			utils.DrawInstanceTypeTable(report)
		}
		if chart {
			utils.DrawServiceCostChart(report)
		}
	}

	if len(reports) > 1 {
		utils.DrawClusterSummaryTable(accountID, reports)
	}

	return runErr
}

// EmitWorkflow sends every computed report to the metric sink
func (s *service) EmitWorkflow(ctx context.Context, clusters []string) ([]model.ClusterReport, error) {
	if s.sink == nil {
		return nil, errors.New("no metric sink configured")
	}

	reports, runErr := s.Run(ctx, clusters)
	errs := []error{runErr}

	for i := range reports {
		if err := s.sink.Emit(ctx, &reports[i]); err != nil {
			s.logger.Error("emitting cluster metrics", "cluster", reports[i].Cluster, "error", err)
			errs = append(errs, err)
			continue
		}
		s.logger.Debug("emitted cluster metrics", "cluster", reports[i].Cluster, "services", len(reports[i].Services))
	}

	return reports, errors.Join(errs...)
}

// JSONWorkflow writes the computed reports as a JSON array
func (s *service) JSONWorkflow(ctx context.Context, clusters []string) error {
	reports, runErr := s.Run(ctx, clusters)

	utils.StopSpinner()

	encoder := json.NewEncoder(s.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return errors.Join(runErr, fmt.Errorf("encoding reports: %w", err))
	}

	return runErr
}
