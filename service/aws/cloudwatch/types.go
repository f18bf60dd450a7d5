package awscloudwatch

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/elC0mpa/ecs-chargeback/model"
)

const (
	ecsNamespace = "AWS/ECS"

	// maxQueriesPerRequest is the GetMetricData query limit
	maxQueriesPerRequest = 500
)

type service struct {
	client cloudwatch.GetMetricDataAPIClient
	now    func() time.Time
}

type CloudWatchService interface {
	GetMetricSeries(ctx context.Context, queries []model.MetricQuery, lookback time.Duration, period int32, stat string) ([]model.MetricSeries, error)
}
