package chargeback

import (
	"context"
	"fmt"

	"github.com/elC0mpa/ecs-chargeback/model"
	svc "github.com/elC0mpa/ecs-chargeback/service"
)

// Cluster owns the services of one ECS cluster. Services are loaded once by
// EnsureLoaded and never change afterwards.
type Cluster struct {
	name       string
	enumerator svc.ClusterService
	aggregator *Aggregator

	loaded   bool
	services []model.Service
}

func NewCluster(name string, enumerator svc.ClusterService, aggregator *Aggregator) *Cluster {
	return &Cluster{
		name:       name,
		enumerator: enumerator,
		aggregator: aggregator,
	}
}

func (c *Cluster) Name() string {
	return c.name
}

// EnsureLoaded enumerates the services and their utilization on first call
func (c *Cluster) EnsureLoaded(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	services, err := c.enumerator.GetServices(ctx, c.name)
	if err != nil {
		return fmt.Errorf("loading services of %s: %w", c.name, err)
	}

	if err := c.aggregator.Aggregate(ctx, c.name, services); err != nil {
		return err
	}

	c.services = services
	c.loaded = true
	return nil
}

// Services returns the loaded services, nil before EnsureLoaded succeeded
func (c *Cluster) Services() []model.Service {
	return c.services
}
