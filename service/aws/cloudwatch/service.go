package awscloudwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/elC0mpa/ecs-chargeback/model"
)

func NewService(awsconfig aws.Config) *service {
	client := cloudwatch.NewFromConfig(awsconfig)
	return &service{
		client: client,
		now:    time.Now,
	}
}

// GetMetricSeries queries the AWS/ECS namespace for every query over
// [now - lookback, now]. Each returned series carries the ID of its query.
func (s *service) GetMetricSeries(ctx context.Context, queries []model.MetricQuery, lookback time.Duration, period int32, stat string) ([]model.MetricSeries, error) {
	end := s.now().UTC()
	start := end.Add(-lookback)

	var series []model.MetricSeries
	for first := 0; first < len(queries); first += maxQueriesPerRequest {
		last := min(first+maxQueriesPerRequest, len(queries))

		dataQueries := make([]types.MetricDataQuery, 0, last-first)
		for _, q := range queries[first:last] {
			dataQueries = append(dataQueries, toMetricDataQuery(q, period, stat))
		}

		paginator := cloudwatch.NewGetMetricDataPaginator(s.client, &cloudwatch.GetMetricDataInput{
			MetricDataQueries: dataQueries,
			StartTime:         aws.Time(start),
			EndTime:           aws.Time(end),
			ScanBy:            types.ScanByTimestampDescending,
		})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("getting metric data: %w", err)
			}

			for _, result := range page.MetricDataResults {
				series = append(series, toMetricSeries(result))
			}
		}
	}

	return series, nil
}

func toMetricDataQuery(q model.MetricQuery, period int32, stat string) types.MetricDataQuery {
	return types.MetricDataQuery{
		Id:    aws.String(q.ID),
		Label: aws.String(q.Service + " " + q.Metric),
		MetricStat: &types.MetricStat{
			Metric: &types.Metric{
				Namespace:  aws.String(ecsNamespace),
				MetricName: aws.String(q.Metric),
				Dimensions: []types.Dimension{
					{Name: aws.String("ClusterName"), Value: aws.String(q.Cluster)},
					{Name: aws.String("ServiceName"), Value: aws.String(q.Service)},
				},
			},
			Period: aws.Int32(period),
			Stat:   aws.String(stat),
		},
		ReturnData: aws.Bool(true),
	}
}

func toMetricSeries(result types.MetricDataResult) model.MetricSeries {
	messages := make([]string, 0, len(result.Messages))
	for _, m := range result.Messages {
		messages = append(messages, fmt.Sprintf("%s: %s", aws.ToString(m.Code), aws.ToString(m.Value)))
	}

	return model.MetricSeries{
		ID:       aws.ToString(result.Id),
		Label:    aws.ToString(result.Label),
		Values:   result.Values,
		Status:   string(result.StatusCode),
		Messages: messages,
	}
}
