package datadogsink

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	payloads []datadogV2.MetricPayload
	keys     map[string]datadog.APIKey
	err      error
}

func (f *fakeSubmitter) SubmitMetrics(ctx context.Context, body datadogV2.MetricPayload, o ...datadogV2.SubmitMetricsOptionalParameters) (datadogV2.IntakePayloadAccepted, *http.Response, error) {
	f.payloads = append(f.payloads, body)
	f.keys, _ = ctx.Value(datadog.ContextAPIKeys).(map[string]datadog.APIKey)
	return datadogV2.IntakePayloadAccepted{}, nil, f.err
}

var at = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

var report = &model.ClusterReport{
	Cluster: "prod",
	Services: []model.ServiceCost{
		{
			Cluster:           "prod",
			Service:           "web",
			Tags:              []model.Tag{{Key: "team", Value: "payments"}},
			CPUReservation:    1024,
			MemoryReservation: 2048,
			HourlyCost:        1.0,
			HourlyWaste:       0.5,
		},
	},
}

func newTestService(api metricsSubmitter) *service {
	return &service{api: api, apiKey: "secret", prefix: "ecs.chargeback", now: func() time.Time { return at }}
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"cluster:prod", "service:web", "team:payments"}, Tags(report.Services[0]))
}

func TestBuildSeries(t *testing.T) {
	series := newTestService(nil).buildSeries(report, at)

	require.Len(t, series, 4)

	expected := []struct {
		name  string
		kind  datadogV2.MetricIntakeType
		value float64
	}{
		{"ecs.chargeback.cpu_reservation", datadogV2.METRICINTAKETYPE_GAUGE, 1024},
		{"ecs.chargeback.memory_reservation", datadogV2.METRICINTAKETYPE_GAUGE, 2048},
		{"ecs.chargeback.hourly_cost", datadogV2.METRICINTAKETYPE_RATE, 1.0},
		{"ecs.chargeback.hourly_waste", datadogV2.METRICINTAKETYPE_RATE, 0.5},
	}
	for i, e := range expected {
		assert.Equal(t, e.name, series[i].Metric)
		assert.Equal(t, e.kind, *series[i].Type)
		require.Len(t, series[i].Points, 1)
		assert.Equal(t, e.value, *series[i].Points[0].Value)
		assert.Equal(t, at.Unix(), *series[i].Points[0].Timestamp)
		assert.Equal(t, []string{"cluster:prod", "service:web", "team:payments"}, series[i].Tags)
	}
}

func TestEmit(t *testing.T) {
	api := &fakeSubmitter{}

	require.NoError(t, newTestService(api).Emit(context.Background(), report))

	require.Len(t, api.payloads, 1)
	assert.Len(t, api.payloads[0].Series, 4)
	assert.Equal(t, "secret", api.keys["apiKeyAuth"].Key)
}

func TestEmitEmptyReport(t *testing.T) {
	api := &fakeSubmitter{}

	require.NoError(t, newTestService(api).Emit(context.Background(), &model.ClusterReport{Cluster: "empty"}))
	assert.Empty(t, api.payloads)
}

func TestEmitError(t *testing.T) {
	failure := errors.New("403 Forbidden")
	api := &fakeSubmitter{err: failure}

	err := newTestService(api).Emit(context.Background(), report)
	assert.ErrorIs(t, err, failure)
}
