package chargeback

import (
	"context"
	"errors"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
)

// ErrCostDataUnavailable is returned when the billing data needed to build the
// instance type index cannot be fetched
var ErrCostDataUnavailable = errors.New("cost data unavailable")

// IndexCache stores built instance type indexes between runs
type IndexCache interface {
	Load(ctx context.Context, cluster string) ([]model.InstanceTypeRecord, bool, error)
	Store(ctx context.Context, cluster string, records []model.InstanceTypeRecord) error
}

// Options configures the lookback windows and metric sampling of a run
type Options struct {
	ClusterTagKey       string
	CostLookback        time.Duration
	UtilizationLookback time.Duration
	UtilizationPeriod   time.Duration
	UtilizationStat     string
}

func DefaultOptions() Options {
	return Options{
		ClusterTagKey:       "cluster",
		CostLookback:        72 * time.Hour,
		UtilizationLookback: 5 * time.Minute,
		UtilizationPeriod:   60 * time.Second,
		UtilizationStat:     "Average",
	}
}
