package awsecs

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/elC0mpa/ecs-chargeback/model"
)

// maxServicesPerDescribe is the DescribeServices limit
const maxServicesPerDescribe = 10

type ecsAPI interface {
	ecs.ListClustersAPIClient
	ecs.ListServicesAPIClient
	DescribeServices(ctx context.Context, params *ecs.DescribeServicesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error)
	DescribeTaskDefinition(ctx context.Context, params *ecs.DescribeTaskDefinitionInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTaskDefinitionOutput, error)
	ListTagsForResource(ctx context.Context, params *ecs.ListTagsForResourceInput, optFns ...func(*ecs.Options)) (*ecs.ListTagsForResourceOutput, error)
}

type service struct {
	client ecsAPI
	logger *slog.Logger
}

type ECSService interface {
	ListClusters(ctx context.Context) ([]string, error)
	GetServices(ctx context.Context, cluster string) ([]model.Service, error)
}
