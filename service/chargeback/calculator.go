package chargeback

import (
	"context"
	"log/slog"

	"github.com/elC0mpa/ecs-chargeback/model"
)

// Calculator prices the services of one cluster. The instance type index and
// the rate derived from it are fixed at construction.
type Calculator struct {
	cluster       string
	instanceTypes []model.InstanceTypeRecord
	rate          model.Rate
	logger        *slog.Logger
}

// NewCalculator loads the instance type index of cluster from cache when
// fresh, otherwise builds it and writes it back to the cache.
func NewCalculator(ctx context.Context, cluster string, builder *IndexBuilder, cache IndexCache, logger *slog.Logger) (*Calculator, error) {
	records, hit, err := cache.Load(ctx, cluster)
	if err != nil {
		return nil, err
	}

	if hit {
		logger.Debug("using cached instance type index", "cluster", cluster, "instance_types", len(records))
	} else {
		records, err = builder.Build(ctx, cluster)
		if err != nil {
			return nil, err
		}
		if err := cache.Store(ctx, cluster, records); err != nil {
			return nil, err
		}
		logger.Debug("built instance type index", "cluster", cluster, "instance_types", len(records))
	}

	return NewCalculatorFromIndex(cluster, records, logger), nil
}

func NewCalculatorFromIndex(cluster string, records []model.InstanceTypeRecord, logger *slog.Logger) *Calculator {
	return &Calculator{
		cluster:       cluster,
		instanceTypes: records,
		rate:          NewRate(records),
		logger:        logger,
	}
}

func (c *Calculator) Rate() model.Rate {
	return c.rate
}

func (c *Calculator) InstanceTypes() []model.InstanceTypeRecord {
	return c.instanceTypes
}

func (c *Calculator) HourlyReservationCost(s model.Service) float64 {
	return HourlyReservationCost(s, c.rate)
}

func (c *Calculator) HourlyUtilizationCost(s model.Service) float64 {
	return HourlyUtilizationCost(s, c.rate)
}

// ServiceCost prices s. Negative waste means utilization above reservation
// and is reported as is.
func (c *Calculator) ServiceCost(s model.Service) model.ServiceCost {
	cost := c.HourlyReservationCost(s)
	waste := cost - c.HourlyUtilizationCost(s)
	if waste < 0 {
		c.logger.Warn("utilization cost exceeds reservation cost",
			"cluster", c.cluster,
			"service", s.Name,
			"cpu_utilization", s.CPUUtilization,
			"memory_utilization", s.MemoryUtilization,
			"hourly_waste", waste)
	}

	return model.ServiceCost{
		Cluster:           c.cluster,
		Service:           s.Name,
		Tags:              s.Tags,
		CPUReservation:    s.CPUReservation(),
		MemoryReservation: s.MemoryReservation(),
		CPUUtilization:    s.CPUUtilization,
		MemoryUtilization: s.MemoryUtilization,
		MemoryPerVCPU:     s.MemoryPerVCPU(),
		HourlyCost:        cost,
		HourlyWaste:       waste,
	}
}
