package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elC0mpa/ecs-chargeback/model"
	promsink "github.com/elC0mpa/ecs-chargeback/service/sink/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeEmitter struct {
	mu      sync.Mutex
	calls   int
	reports []model.ClusterReport
	err     error
	block   chan struct{}
	started chan struct{}
}

func (f *fakeEmitter) EmitWorkflow(ctx context.Context, clusters []string) ([]model.ClusterReport, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.reports, f.err
}

var prod = model.ClusterReport{
	Cluster:  "prod",
	Services: []model.ServiceCost{{Cluster: "prod", Service: "web", HourlyCost: 1, HourlyWaste: 0.5}},
}

func TestRunnerStoresReports(t *testing.T) {
	emitter := &fakeEmitter{reports: []model.ClusterReport{prod}}
	r := newRunner(emitter, nil, discard)

	assert.True(t, r.Run(context.Background()))

	report, ok := r.Report("prod")
	require.True(t, ok)
	assert.Equal(t, prod, report)
	assert.Len(t, r.Reports(), 1)

	lastRun, lastErr := r.Status()
	assert.False(t, lastRun.IsZero())
	assert.NoError(t, lastErr)
}

func TestRunnerKeepsPartialResults(t *testing.T) {
	failure := errors.New("cluster broken: billing unavailable")
	emitter := &fakeEmitter{reports: []model.ClusterReport{prod}, err: failure}
	r := newRunner(emitter, nil, discard)

	r.Run(context.Background())

	_, ok := r.Report("prod")
	assert.True(t, ok)
	_, lastErr := r.Status()
	assert.ErrorIs(t, lastErr, failure)
}

func TestRunnerSkipsOverlappingRuns(t *testing.T) {
	emitter := &fakeEmitter{block: make(chan struct{}), started: make(chan struct{})}
	r := newRunner(emitter, nil, discard)

	done := make(chan bool)
	go func() { done <- r.Run(context.Background()) }()
	<-emitter.started

	assert.False(t, r.Run(context.Background()))

	close(emitter.block)
	assert.True(t, <-done)
	assert.Equal(t, 1, emitter.calls)
}

func TestRouter(t *testing.T) {
	emitter := &fakeEmitter{reports: []model.ClusterReport{prod}}
	r := newRunner(emitter, nil, discard)
	r.Run(context.Background())

	sink := promsink.NewService("")
	require.NoError(t, sink.Emit(context.Background(), &prod))
	router := newRouter(r, sink.Registry())

	t.Run("healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("clusters", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clusters", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var reports []model.ClusterReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, "prod", reports[0].Cluster)
	})

	t.Run("cluster", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clusters/prod", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var report model.ClusterReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 0.5, report.Services[0].HourlyWaste)
	})

	t.Run("unknown cluster", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clusters/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), `ecs_chargeback_hourly_cost{cluster="prod",service="web"} 1`))
	})
}
