package awsecs

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/elC0mpa/ecs-chargeback/model"
)

func NewService(awsconfig aws.Config, logger *slog.Logger) *service {
	client := ecs.NewFromConfig(awsconfig)
	return &service{
		client: client,
		logger: logger,
	}
}

// ListClusters returns the names of every cluster in the region
func (s *service) ListClusters(ctx context.Context) ([]string, error) {
	var names []string

	paginator := ecs.NewListClustersPaginator(s.client, &ecs.ListClustersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing clusters: %w", err)
		}
		for _, arn := range page.ClusterArns {
			names = append(names, nameFromArn(arn))
		}
	}

	return names, nil
}

// GetServices returns every service of the cluster with its task count and
// per-task reservation. Tags are best effort: a failed lookup leaves them empty.
func (s *service) GetServices(ctx context.Context, cluster string) ([]model.Service, error) {
	var arns []string

	paginator := ecs.NewListServicesPaginator(s.client, &ecs.ListServicesInput{
		Cluster: aws.String(cluster),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing services of %s: %w", cluster, err)
		}
		arns = append(arns, page.ServiceArns...)
	}

	taskDefinitions := make(map[string]reservation)
	services := make([]model.Service, 0, len(arns))

	for start := 0; start < len(arns); start += maxServicesPerDescribe {
		end := min(start+maxServicesPerDescribe, len(arns))

		output, err := s.client.DescribeServices(ctx, &ecs.DescribeServicesInput{
			Cluster:  aws.String(cluster),
			Services: arns[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("describing services of %s: %w", cluster, err)
		}

		for _, ecsService := range output.Services {
			taskDefinitionArn := aws.ToString(ecsService.TaskDefinition)
			res, ok := taskDefinitions[taskDefinitionArn]
			if !ok {
				res, err = s.getReservation(ctx, taskDefinitionArn)
				if err != nil {
					return nil, err
				}
				taskDefinitions[taskDefinitionArn] = res
			}

			services = append(services, model.Service{
				Name:                  aws.ToString(ecsService.ServiceName),
				TaskCount:             ecsService.RunningCount,
				TaskCPUReservation:    res.cpu,
				TaskMemoryReservation: res.memory,
				Tags:                  s.getTags(ctx, aws.ToString(ecsService.ServiceArn)),
			})
		}
	}

	return services, nil
}

type reservation struct {
	cpu    int64
	memory int64
}

func (s *service) getReservation(ctx context.Context, taskDefinitionArn string) (reservation, error) {
	output, err := s.client.DescribeTaskDefinition(ctx, &ecs.DescribeTaskDefinitionInput{
		TaskDefinition: aws.String(taskDefinitionArn),
	})
	if err != nil {
		return reservation{}, fmt.Errorf("describing task definition %s: %w", taskDefinitionArn, err)
	}
	if output.TaskDefinition == nil {
		return reservation{}, nil
	}

	return taskReservation(output.TaskDefinition), nil
}

// taskReservation sums the container reservations of a task definition. When
// containers declare nothing (common on Fargate) the task-level size is used.
func taskReservation(td *types.TaskDefinition) reservation {
	var res reservation
	for _, container := range td.ContainerDefinitions {
		res.cpu += int64(container.Cpu)
		switch {
		case container.Memory != nil:
			res.memory += int64(*container.Memory)
		case container.MemoryReservation != nil:
			res.memory += int64(*container.MemoryReservation)
		}
	}

	if res.cpu == 0 {
		res.cpu = parseTaskSize(aws.ToString(td.Cpu))
	}
	if res.memory == 0 {
		res.memory = parseTaskSize(aws.ToString(td.Memory))
	}
	return res
}

// parseTaskSize parses task-level sizes like "1024" or "1 vCPU" / "2 GB".
func parseTaskSize(size string) int64 {
	size = strings.TrimSpace(size)
	if size == "" {
		return 0
	}
	if v, err := strconv.ParseInt(size, 10, 64); err == nil {
		return v
	}

	fields := strings.Fields(size)
	if len(fields) != 2 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(fields[1]) {
	case "vcpu", "gb":
		return int64(v * 1024)
	}
	return 0
}

func (s *service) getTags(ctx context.Context, serviceArn string) []model.Tag {
	output, err := s.client.ListTagsForResource(ctx, &ecs.ListTagsForResourceInput{
		ResourceArn: aws.String(serviceArn),
	})
	if err != nil {
		s.logger.Warn("listing service tags failed", "service", serviceArn, "error", err)
		return []model.Tag{}
	}

	tags := make([]model.Tag, 0, len(output.Tags))
	for _, t := range output.Tags {
		tags = append(tags, model.Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}
	return tags
}

func nameFromArn(arn string) string {
	if idx := strings.LastIndex(arn, "/"); idx >= 0 {
		return arn[idx+1:]
	}
	return arn
}
