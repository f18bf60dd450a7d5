package main

import (
	"context"
	"fmt"
	"os"

	"github.com/elC0mpa/ecs-chargeback/cmd/mcp/tools"
	"github.com/elC0mpa/ecs-chargeback/service/app"
	"github.com/elC0mpa/ecs-chargeback/utils"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol, logs go to stderr
	logger := utils.NewLogger(cfg.LogLevel, true)

	chargebackApp, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Initialization error: %v\n", err)
		os.Exit(1)
	}
	defer chargebackApp.Close()

	s := server.NewMCPServer(
		"ecs-chargeback-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterECSTools(s, chargebackApp.Engine, chargebackApp.Identity)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
