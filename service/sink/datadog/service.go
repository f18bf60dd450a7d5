package datadogsink

import (
	"context"
	"fmt"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/elC0mpa/ecs-chargeback/model"
)

// NewService builds the Datadog client once. The API key travels in the
// context of every submission.
func NewService(apiKey, prefix string) *service {
	client := datadog.NewAPIClient(datadog.NewConfiguration())
	return &service{
		api:    datadogV2.NewMetricsApi(client),
		apiKey: apiKey,
		prefix: prefix,
		now:    time.Now,
	}
}

// Emit submits four series per service of report in a single payload
func (s *service) Emit(ctx context.Context, report *model.ClusterReport) error {
	if report == nil || len(report.Services) == 0 {
		return nil
	}

	ctx = context.WithValue(ctx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: s.apiKey},
	})

	payload := datadogV2.MetricPayload{Series: s.buildSeries(report, s.now())}
	_, resp, err := s.api.SubmitMetrics(ctx, payload, *datadogV2.NewSubmitMetricsOptionalParameters())
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("submitting metrics for %s: %w", report.Cluster, err)
	}

	return nil
}

func (s *service) buildSeries(report *model.ClusterReport, at time.Time) []datadogV2.MetricSeries {
	timestamp := at.Unix()
	series := make([]datadogV2.MetricSeries, 0, 4*len(report.Services))

	for _, cost := range report.Services {
		tags := Tags(cost)
		series = append(series,
			s.point("cpu_reservation", datadogV2.METRICINTAKETYPE_GAUGE, float64(cost.CPUReservation), timestamp, tags),
			s.point("memory_reservation", datadogV2.METRICINTAKETYPE_GAUGE, float64(cost.MemoryReservation), timestamp, tags),
			s.point("hourly_cost", datadogV2.METRICINTAKETYPE_RATE, cost.HourlyCost, timestamp, tags),
			s.point("hourly_waste", datadogV2.METRICINTAKETYPE_RATE, cost.HourlyWaste, timestamp, tags),
		)
	}

	return series
}

func (s *service) point(name string, kind datadogV2.MetricIntakeType, value float64, timestamp int64, tags []string) datadogV2.MetricSeries {
	return datadogV2.MetricSeries{
		Metric: s.prefix + "." + name,
		Type:   kind.Ptr(),
		Points: []datadogV2.MetricPoint{
			{
				Timestamp: datadog.PtrInt64(timestamp),
				Value:     datadog.PtrFloat64(value),
			},
		},
		Tags: tags,
	}
}

// Tags returns the cluster and service tags followed by the service's own tags
func Tags(cost model.ServiceCost) []string {
	tags := make([]string, 0, 2+len(cost.Tags))
	tags = append(tags, "cluster:"+cost.Cluster, "service:"+cost.Service)
	for _, t := range cost.Tags {
		tags = append(tags, t.Key+":"+t.Value)
	}
	return tags
}
