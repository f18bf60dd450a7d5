package chargeback

import (
	"context"
	"fmt"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
	svc "github.com/elC0mpa/ecs-chargeback/service"
)

// IndexBuilder builds the per instance type cost index of a cluster from
// billing data and hardware specs.
type IndexBuilder struct {
	billing       svc.BillingService
	specs         svc.InstanceSpecService
	clusterTagKey string
	costLookback  time.Duration
}

func NewIndexBuilder(billing svc.BillingService, specs svc.InstanceSpecService, clusterTagKey string, costLookback time.Duration) *IndexBuilder {
	return &IndexBuilder{
		billing:       billing,
		specs:         specs,
		clusterTagKey: clusterTagKey,
		costLookback:  costLookback,
	}
}

func (b *IndexBuilder) Build(ctx context.Context, cluster string) ([]model.InstanceTypeRecord, error) {
	groups, err := b.billing.GetRunningHoursByInstanceType(ctx, b.clusterTagKey, cluster, b.costLookback)
	if err != nil {
		return nil, fmt.Errorf("%w: billing query for %s: %w", ErrCostDataUnavailable, cluster, err)
	}

	records := accumulate(groups)
	if len(records) == 0 {
		return records, nil
	}

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}

	specs, err := b.specs.GetInstanceSpecs(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("%w: instance specs for %s: %w", ErrCostDataUnavailable, cluster, err)
	}

	enrich(records, specs)
	return records, nil
}

// accumulate sums cost and usage per instance type, keeping first-seen order
func accumulate(groups []model.UsageGroup) []model.InstanceTypeRecord {
	records := []model.InstanceTypeRecord{}
	index := make(map[string]int)

	for _, g := range groups {
		i, ok := index[g.InstanceType]
		if !ok {
			i = len(records)
			index[g.InstanceType] = i
			records = append(records, model.InstanceTypeRecord{Name: g.InstanceType})
		}
		records[i].Cost += g.Cost
		records[i].Usage += g.Usage
	}

	return records
}

// enrich sets the hardware specs of every record found in specs. Records
// missing from specs keep zero vCPUs and memory.
func enrich(records []model.InstanceTypeRecord, specs []model.InstanceSpec) {
	byName := make(map[string]model.InstanceSpec, len(specs))
	for _, s := range specs {
		byName[s.Name] = s
	}

	for i := range records {
		if s, ok := byName[records[i].Name]; ok {
			records[i].VCPUs = s.VCPUs
			records[i].Memory = s.Memory
		}
	}
}
