package promsink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prodReport(services ...model.ServiceCost) *model.ClusterReport {
	return &model.ClusterReport{
		Cluster:     "prod",
		Rate:        model.Rate{HourlyVCPUCost: 0.04, MemoryPerVCPU: 4096},
		Services:    services,
		GeneratedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

var web = model.ServiceCost{Cluster: "prod", Service: "web", CPUReservation: 1024, MemoryReservation: 2048, CPUUtilization: 50, MemoryUtilization: 40, HourlyCost: 1.0, HourlyWaste: 0.5}

var worker = model.ServiceCost{Cluster: "prod", Service: "worker", CPUReservation: 512, MemoryReservation: 1024, HourlyCost: 0.25, HourlyWaste: 0.25}

func TestEmit(t *testing.T) {
	s := NewService("")

	require.NoError(t, s.Emit(context.Background(), prodReport(web, worker)))

	assert.Equal(t, 1.0, testutil.ToFloat64(s.hourlyCost.WithLabelValues("prod", "web")))
	assert.Equal(t, 0.5, testutil.ToFloat64(s.hourlyWaste.WithLabelValues("prod", "web")))
	assert.Equal(t, 1024.0, testutil.ToFloat64(s.cpuReservation.WithLabelValues("prod", "web")))
	assert.Equal(t, 0.04, testutil.ToFloat64(s.hourlyVCPUCost.WithLabelValues("prod")))
	assert.Equal(t, 2, testutil.CollectAndCount(s.hourlyCost))

	expected := `
# HELP ecs_chargeback_hourly_waste Hourly cost of the reserved but unused capacity of a service
# TYPE ecs_chargeback_hourly_waste gauge
ecs_chargeback_hourly_waste{cluster="prod",service="web"} 0.5
ecs_chargeback_hourly_waste{cluster="prod",service="worker"} 0.25
`
	assert.NoError(t, testutil.GatherAndCompare(s.Registry(), strings.NewReader(expected), "ecs_chargeback_hourly_waste"))
}

func TestEmitServiceTags(t *testing.T) {
	s := NewService("")
	tagged := web
	tagged.Tags = []model.Tag{{Key: "team", Value: "payments"}, {Key: "env", Value: "prod"}}
	platform := worker
	platform.Tags = []model.Tag{{Key: "team", Value: "platform"}}

	require.NoError(t, s.Emit(context.Background(), prodReport(tagged, platform)))

	expected := `
# HELP ecs_chargeback_service_info Always 1, carries the tags of a service
# TYPE ecs_chargeback_service_info gauge
ecs_chargeback_service_info{cluster="prod",service="web",tags="env=prod,team=payments"} 1
ecs_chargeback_service_info{cluster="prod",service="worker",tags="team=platform"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(s.Registry(), strings.NewReader(expected), "ecs_chargeback_service_info"))

	// retagging replaces the series instead of adding one
	tagged.Tags = []model.Tag{{Key: "team", Value: "billing"}}
	require.NoError(t, s.Emit(context.Background(), prodReport(tagged)))
	assert.Equal(t, 1, testutil.CollectAndCount(s.serviceInfo))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.serviceInfo.WithLabelValues("prod", "web", "team=billing")))
}

func TestEmitDropsRemovedServices(t *testing.T) {
	s := NewService("")

	require.NoError(t, s.Emit(context.Background(), prodReport(web, worker)))
	require.NoError(t, s.Emit(context.Background(), prodReport(web)))

	assert.Equal(t, 1, testutil.CollectAndCount(s.hourlyCost))
}

func TestEmitKeepsOtherClusters(t *testing.T) {
	s := NewService("")
	staging := &model.ClusterReport{Cluster: "staging", Services: []model.ServiceCost{{Cluster: "staging", Service: "api", HourlyCost: 0.1}}}

	require.NoError(t, s.Emit(context.Background(), staging))
	require.NoError(t, s.Emit(context.Background(), prodReport(web)))

	assert.Equal(t, 2, testutil.CollectAndCount(s.hourlyCost))
	assert.Equal(t, 0.1, testutil.ToFloat64(s.hourlyCost.WithLabelValues("staging", "api")))
}

func TestEmitPushes(t *testing.T) {
	var paths []string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	s := NewService(gateway.URL)

	require.NoError(t, s.Emit(context.Background(), prodReport(web)))
	assert.Equal(t, []string{"PUT /metrics/job/ecs_chargeback"}, paths)
}

func TestEmitPushError(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer gateway.Close()

	s := NewService(gateway.URL)

	assert.Error(t, s.Emit(context.Background(), prodReport(web)))
}
