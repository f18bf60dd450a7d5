package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	svc "github.com/elC0mpa/ecs-chargeback/service"
	"github.com/elC0mpa/ecs-chargeback/service/app"
	"github.com/elC0mpa/ecs-chargeback/service/config"
	"github.com/elC0mpa/ecs-chargeback/service/orchestrator"
	promsink "github.com/elC0mpa/ecs-chargeback/service/sink/prometheus"
	"github.com/elC0mpa/ecs-chargeback/utils"
)

// handler reports every configured cluster to the metric sink on each
// scheduled invocation
type handler struct {
	orchestrator orchestrator.OrchestratorService
	clusters     []string
}

func (h *handler) Handle(ctx context.Context, event events.CloudWatchEvent) error {
	_, err := h.orchestrator.EmitWorkflow(ctx, h.clusters)
	return err
}

func selectSink(cfg *config.Config) (svc.MetricSink, error) {
	if sink := app.DatadogSink(cfg); sink != nil {
		return sink, nil
	}
	if cfg.Prometheus.PushgatewayURL != "" {
		return promsink.NewService(cfg.Prometheus.PushgatewayURL), nil
	}
	return nil, errors.New("DATADOG_API_KEY or PUSHGATEWAY_URL must be set")
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.LogLevel, true)

	sink, err := selectSink(cfg)
	if err != nil {
		logger.Error("no metric sink configured", "error", err)
		os.Exit(1)
	}

	chargebackApp, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("initializing", "error", err)
		os.Exit(1)
	}

	h := &handler{
		orchestrator: orchestrator.NewService(chargebackApp.Engine, chargebackApp.Identity, sink, logger),
		clusters:     cfg.Clusters,
	}
	lambda.Start(h.Handle)
}
