package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	svc "github.com/elC0mpa/ecs-chargeback/service"
	"github.com/elC0mpa/ecs-chargeback/service/app"
	"github.com/elC0mpa/ecs-chargeback/service/config"
	"github.com/elC0mpa/ecs-chargeback/service/flag"
	"github.com/elC0mpa/ecs-chargeback/service/orchestrator"
	promsink "github.com/elC0mpa/ecs-chargeback/service/sink/prometheus"
	"github.com/elC0mpa/ecs-chargeback/utils"
)

func main() {
	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		fail(err)
	}

	cfg, err := config.Load(flags.Config)
	if err != nil {
		fail(err)
	}
	if flags.Region != "" {
		cfg.Region = flags.Region
	}
	if flags.Profile != "" {
		cfg.Profile = flags.Profile
	}
	if flags.Clusters == "" {
		flags.Clusters = strings.Join(cfg.Clusters, ",")
	}

	logger := utils.NewLogger(cfg.LogLevel, flags.JSON)

	if !flags.JSON && !flags.Emit {
		utils.DrawBanner()
		utils.StartSpinner()
	}

	ctx := context.Background()
	chargebackApp, err := app.New(ctx, cfg, logger)
	if err != nil {
		utils.StopSpinner()
		fail(err)
	}
	defer chargebackApp.Close()

	var sink svc.MetricSink
	if flags.Emit {
		sink = app.DatadogSink(cfg)
		if sink == nil && cfg.Prometheus.PushgatewayURL != "" {
			sink = promsink.NewService(cfg.Prometheus.PushgatewayURL)
		}
	}

	orchestratorService := orchestrator.NewService(chargebackApp.Engine, chargebackApp.Identity, sink, logger)

	err = orchestratorService.Orchestrate(ctx, flags)
	if err != nil {
		utils.StopSpinner()
		chargebackApp.Close()
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "ecs-chargeback: %v\n", err)
	os.Exit(1)
}
