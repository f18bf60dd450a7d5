package orchestrator

import (
	"context"
	"io"
	"log/slog"

	"github.com/elC0mpa/ecs-chargeback/model"
	svc "github.com/elC0mpa/ecs-chargeback/service"
)

// ReportEngine computes the chargeback report of a single cluster
type ReportEngine interface {
	ListClusters(ctx context.Context) ([]string, error)
	Report(ctx context.Context, cluster string) (*model.ClusterReport, error)
}

type service struct {
	engine          ReportEngine
	identityService svc.IdentityService
	sink            svc.MetricSink
	logger          *slog.Logger
	out             io.Writer
}

type OrchestratorService interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
	Run(ctx context.Context, clusters []string) ([]model.ClusterReport, error)
	EmitWorkflow(ctx context.Context, clusters []string) ([]model.ClusterReport, error)
}
