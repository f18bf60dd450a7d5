package awsecs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeECS struct {
	clusterArns     []string
	serviceArns     []string
	services        map[string]types.Service
	taskDefinitions map[string]*types.TaskDefinition
	tags            map[string][]types.Tag

	describeServiceCalls int
	taskDefinitionCalls  int
}

func (f *fakeECS) ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error) {
	return &ecs.ListClustersOutput{ClusterArns: f.clusterArns}, nil
}

func (f *fakeECS) ListServices(ctx context.Context, params *ecs.ListServicesInput, optFns ...func(*ecs.Options)) (*ecs.ListServicesOutput, error) {
	return &ecs.ListServicesOutput{ServiceArns: f.serviceArns}, nil
}

func (f *fakeECS) DescribeServices(ctx context.Context, params *ecs.DescribeServicesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error) {
	f.describeServiceCalls++
	if len(params.Services) > maxServicesPerDescribe {
		return nil, fmt.Errorf("too many services: %d", len(params.Services))
	}
	out := &ecs.DescribeServicesOutput{}
	for _, arn := range params.Services {
		out.Services = append(out.Services, f.services[arn])
	}
	return out, nil
}

func (f *fakeECS) DescribeTaskDefinition(ctx context.Context, params *ecs.DescribeTaskDefinitionInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTaskDefinitionOutput, error) {
	f.taskDefinitionCalls++
	td, ok := f.taskDefinitions[aws.ToString(params.TaskDefinition)]
	if !ok {
		return nil, errors.New("task definition not found")
	}
	return &ecs.DescribeTaskDefinitionOutput{TaskDefinition: td}, nil
}

func (f *fakeECS) ListTagsForResource(ctx context.Context, params *ecs.ListTagsForResourceInput, optFns ...func(*ecs.Options)) (*ecs.ListTagsForResourceOutput, error) {
	tags, ok := f.tags[aws.ToString(params.ResourceArn)]
	if !ok {
		return nil, errors.New("access denied")
	}
	return &ecs.ListTagsForResourceOutput{Tags: tags}, nil
}

func newTestService(client ecsAPI) *service {
	return &service{client: client, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestListClusters(t *testing.T) {
	client := &fakeECS{clusterArns: []string{
		"arn:aws:ecs:us-east-1:123456789012:cluster/prod",
		"arn:aws:ecs:us-east-1:123456789012:cluster/staging",
	}}

	names, err := newTestService(client).ListClusters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"prod", "staging"}, names)
}

func TestGetServices(t *testing.T) {
	client := &fakeECS{
		serviceArns: []string{"svc/api", "svc/worker"},
		services: map[string]types.Service{
			"svc/api":    {ServiceName: aws.String("api"), ServiceArn: aws.String("svc/api"), RunningCount: 2, TaskDefinition: aws.String("td/api:1")},
			"svc/worker": {ServiceName: aws.String("worker"), ServiceArn: aws.String("svc/worker"), RunningCount: 1, TaskDefinition: aws.String("td/api:1")},
		},
		taskDefinitions: map[string]*types.TaskDefinition{
			"td/api:1": {ContainerDefinitions: []types.ContainerDefinition{
				{Cpu: 256, Memory: aws.Int32(512)},
				{Cpu: 256, MemoryReservation: aws.Int32(512)},
			}},
		},
		tags: map[string][]types.Tag{
			"svc/api": {{Key: aws.String("team"), Value: aws.String("payments")}},
		},
	}

	services, err := newTestService(client).GetServices(context.Background(), "prod")
	require.NoError(t, err)
	assert.Equal(t, []model.Service{
		{Name: "api", TaskCount: 2, TaskCPUReservation: 512, TaskMemoryReservation: 1024, Tags: []model.Tag{{Key: "team", Value: "payments"}}},
		{Name: "worker", TaskCount: 1, TaskCPUReservation: 512, TaskMemoryReservation: 1024, Tags: []model.Tag{}},
	}, services)
	assert.Equal(t, 1, client.taskDefinitionCalls)
}

func TestGetServices_BatchesDescribe(t *testing.T) {
	client := &fakeECS{
		services:        map[string]types.Service{},
		taskDefinitions: map[string]*types.TaskDefinition{"td": {}},
		tags:            map[string][]types.Tag{},
	}
	for i := 0; i < 25; i++ {
		arn := fmt.Sprintf("svc/%d", i)
		client.serviceArns = append(client.serviceArns, arn)
		client.services[arn] = types.Service{ServiceName: aws.String(arn), ServiceArn: aws.String(arn), TaskDefinition: aws.String("td")}
	}

	services, err := newTestService(client).GetServices(context.Background(), "prod")
	require.NoError(t, err)
	assert.Len(t, services, 25)
	assert.Equal(t, 3, client.describeServiceCalls)
}

func TestGetServices_TaskDefinitionError(t *testing.T) {
	client := &fakeECS{
		serviceArns: []string{"svc/api"},
		services: map[string]types.Service{
			"svc/api": {ServiceName: aws.String("api"), TaskDefinition: aws.String("td/missing")},
		},
	}

	_, err := newTestService(client).GetServices(context.Background(), "prod")
	assert.ErrorContains(t, err, "td/missing")
}

func TestTaskReservation_FallsBackToTaskSize(t *testing.T) {
	td := &types.TaskDefinition{
		Cpu:                  aws.String("1 vCPU"),
		Memory:               aws.String("2048"),
		ContainerDefinitions: []types.ContainerDefinition{{Name: aws.String("app")}},
	}

	assert.Equal(t, reservation{cpu: 1024, memory: 2048}, taskReservation(td))
}

func TestParseTaskSize(t *testing.T) {
	tests := map[string]int64{
		"":         0,
		"512":      512,
		"0.5 vCPU": 512,
		"4 GB":     4096,
		"4 TB":     0,
		"garbage":  0,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, parseTaskSize(in))
		})
	}
}
