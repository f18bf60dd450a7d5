package awscostexplorer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/elC0mpa/ecs-chargeback/model"
)

func NewService(awsconfig aws.Config) *service {
	client := costexplorer.NewFromConfig(awsconfig)
	return &service{
		client: client,
		now:    time.Now,
	}
}

// GetRunningHoursByInstanceType returns one UsageGroup per (day, usage type)
// for EC2 running hours of instances tagged clusterTagKey=clusterName.
func (s *service) GetRunningHoursByInstanceType(ctx context.Context, clusterTagKey, clusterName string, lookback time.Duration) ([]model.UsageGroup, error) {
	end := s.now().UTC()
	start := end.Add(-lookback)

	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityDaily,
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format(dateLayout)),
			End:   aws.String(end.Format(dateLayout)),
		},
		Filter: &types.Expression{
			And: []types.Expression{
				{
					Tags: &types.TagValues{
						Key:    aws.String(clusterTagKey),
						Values: []string{clusterName},
					},
				},
				{
					Dimensions: &types.DimensionValues{
						Key:    types.DimensionUsageTypeGroup,
						Values: []string{runningHoursGroup},
					},
				},
			},
		},
		Metrics: []string{costMetric, usageMetric},
		GroupBy: []types.GroupDefinition{
			{
				Key:  aws.String(usageTypeDimension),
				Type: types.GroupDefinitionTypeDimension,
			},
		},
	}

	var groups []model.UsageGroup
	for {
		output, err := s.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, result := range output.ResultsByTime {
			for _, g := range result.Groups {
				group, err := s.parseGroup(g)
				if err != nil {
					return nil, err
				}
				groups = append(groups, group)
			}
		}

		if output.NextPageToken == nil || *output.NextPageToken == "" {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	return groups, nil
}

func (s *service) parseGroup(g types.Group) (model.UsageGroup, error) {
	if len(g.Keys) == 0 {
		return model.UsageGroup{}, fmt.Errorf("cost group without usage type key")
	}

	cost, err := s.metricAmount(g, costMetric)
	if err != nil {
		return model.UsageGroup{}, err
	}

	usage, err := s.metricAmount(g, usageMetric)
	if err != nil {
		return model.UsageGroup{}, err
	}

	return model.UsageGroup{
		InstanceType: InstanceTypeFromUsageType(g.Keys[0]),
		Cost:         cost,
		Usage:        usage,
	}, nil
}

func (s *service) metricAmount(g types.Group, metric string) (float64, error) {
	value, ok := g.Metrics[metric]
	if !ok || value.Amount == nil {
		return 0, nil
	}

	amount, err := strconv.ParseFloat(*value.Amount, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s amount %q: %w", metric, *value.Amount, err)
	}
	return amount, nil
}

// InstanceTypeFromUsageType extracts the instance type from a usage type key
// such as "USE1-BoxUsage:m5.large".
func InstanceTypeFromUsageType(usageType string) string {
	if idx := strings.LastIndex(usageType, ":"); idx >= 0 {
		return usageType[idx+1:]
	}
	return usageType
}
