package chargeback

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var errBackend = errors.New("backend down")

type fakeBilling struct {
	groups []model.UsageGroup
	err    error
	calls  int
}

func (f *fakeBilling) GetRunningHoursByInstanceType(ctx context.Context, clusterTagKey, clusterName string, lookback time.Duration) ([]model.UsageGroup, error) {
	f.calls++
	return f.groups, f.err
}

type fakeSpecs struct {
	specs []model.InstanceSpec
	err   error
	calls int
	names []string
}

func (f *fakeSpecs) GetInstanceSpecs(ctx context.Context, names []string) ([]model.InstanceSpec, error) {
	f.calls++
	f.names = names
	return f.specs, f.err
}

type fakeClusters struct {
	clusters []string
	services map[string][]model.Service
	err      error
	calls    int
}

func (f *fakeClusters) ListClusters(ctx context.Context) ([]string, error) {
	return f.clusters, f.err
}

func (f *fakeClusters) GetServices(ctx context.Context, cluster string) ([]model.Service, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	// callers mutate the slice, hand out a copy
	return append([]model.Service(nil), f.services[cluster]...), nil
}

// fakeMetrics answers every query with the values registered for its
// (service, metric) pair
type fakeMetrics struct {
	values  map[string][]float64
	status  string
	err     error
	calls   int
	queries []model.MetricQuery
}

func (f *fakeMetrics) GetMetricSeries(ctx context.Context, queries []model.MetricQuery, lookback time.Duration, period int32, stat string) ([]model.MetricSeries, error) {
	f.calls++
	f.queries = queries
	if f.err != nil {
		return nil, f.err
	}

	status := f.status
	if status == "" {
		status = model.MetricStatusComplete
	}

	series := make([]model.MetricSeries, 0, len(queries))
	for _, q := range queries {
		values, ok := f.values[q.Service+"/"+q.Metric]
		if !ok {
			continue
		}
		series = append(series, model.MetricSeries{
			ID:     q.ID,
			Label:  q.Service + " " + q.Metric,
			Values: values,
			Status: status,
		})
	}
	return series, nil
}

type fakeCache struct {
	entries map[string][]model.InstanceTypeRecord
	loadErr error
	saveErr error
	stores  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]model.InstanceTypeRecord{}}
}

func (f *fakeCache) Load(ctx context.Context, cluster string) ([]model.InstanceTypeRecord, bool, error) {
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	records, ok := f.entries[cluster]
	return records, ok, nil
}

func (f *fakeCache) Store(ctx context.Context, cluster string, records []model.InstanceTypeRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stores++
	f.entries[cluster] = records
	return nil
}
