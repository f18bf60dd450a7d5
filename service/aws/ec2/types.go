package awsec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/elC0mpa/ecs-chargeback/model"
)

// maxInstanceTypesPerRequest caps the filter values sent per request
const maxInstanceTypesPerRequest = 100

type service struct {
	client ec2.DescribeInstanceTypesAPIClient
}

type EC2Service interface {
	GetInstanceSpecs(ctx context.Context, names []string) ([]model.InstanceSpec, error)
}
