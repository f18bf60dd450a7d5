package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/elC0mpa/ecs-chargeback/service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrchestrator struct {
	clusters []string
	err      error
}

func (f *fakeOrchestrator) Orchestrate(ctx context.Context, flags model.Flags) error {
	return nil
}

func (f *fakeOrchestrator) Run(ctx context.Context, clusters []string) ([]model.ClusterReport, error) {
	return nil, nil
}

func (f *fakeOrchestrator) EmitWorkflow(ctx context.Context, clusters []string) ([]model.ClusterReport, error) {
	f.clusters = clusters
	return nil, f.err
}

func TestHandle(t *testing.T) {
	o := &fakeOrchestrator{}
	h := &handler{orchestrator: o, clusters: []string{"prod"}}

	require.NoError(t, h.Handle(context.Background(), events.CloudWatchEvent{Source: "aws.events"}))
	assert.Equal(t, []string{"prod"}, o.clusters)
}

func TestHandleError(t *testing.T) {
	failure := errors.New("cluster prod: cost data unavailable")
	h := &handler{orchestrator: &fakeOrchestrator{err: failure}}

	assert.ErrorIs(t, h.Handle(context.Background(), events.CloudWatchEvent{}), failure)
}

func TestSelectSink(t *testing.T) {
	cfg := config.Default()

	_, err := selectSink(cfg)
	assert.Error(t, err)

	cfg.Prometheus.PushgatewayURL = "http://pushgateway:9091"
	sink, err := selectSink(cfg)
	require.NoError(t, err)
	assert.NotNil(t, sink)

	cfg.Datadog.APIKey = "key"
	sink, err = selectSink(cfg)
	require.NoError(t, err)
	assert.NotNil(t, sink)
}
