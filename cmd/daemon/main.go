package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elC0mpa/ecs-chargeback/service/app"
	"github.com/elC0mpa/ecs-chargeback/service/config"
	"github.com/elC0mpa/ecs-chargeback/service/orchestrator"
	promsink "github.com/elC0mpa/ecs-chargeback/service/sink/prometheus"
	"github.com/elC0mpa/ecs-chargeback/utils"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chargebackApp, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("initializing", "error", err)
		os.Exit(1)
	}
	defer chargebackApp.Close()

	sink := promsink.NewService(cfg.Prometheus.PushgatewayURL)
	r := newRunner(orchestrator.NewService(chargebackApp.Engine, chargebackApp.Identity, sink, logger), cfg.Clusters, logger)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Daemon.Schedule, func() { r.Run(ctx) }); err != nil {
		logger.Error("invalid schedule", "schedule", cfg.Daemon.Schedule, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	go r.Run(ctx)

	server := &http.Server{
		Addr:         cfg.Daemon.ListenAddr,
		Handler:      newRouter(r, sink.Registry()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("serving", "addr", cfg.Daemon.ListenAddr, "schedule", cfg.Daemon.Schedule)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	<-scheduler.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
}
