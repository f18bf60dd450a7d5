package awscostexplorer

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/elC0mpa/ecs-chargeback/model"
)

const (
	costMetric         = "BlendedCost"
	usageMetric        = "UsageQuantity"
	runningHoursGroup  = "EC2: Running Hours"
	usageTypeDimension = "USAGE_TYPE"
	dateLayout         = "2006-01-02"
)

type costAndUsageAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type service struct {
	client costAndUsageAPI
	now    func() time.Time
}

type CostService interface {
	GetRunningHoursByInstanceType(ctx context.Context, clusterTagKey, clusterName string, lookback time.Duration) ([]model.UsageGroup, error)
}
