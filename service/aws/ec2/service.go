package awsec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/elC0mpa/ecs-chargeback/model"
)

func NewService(awsconfig aws.Config) *service {
	client := ec2.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

// GetInstanceSpecs returns the default vCPU count and memory size of every
// known instance type in names. Names are matched through the instance-type
// filter, which ignores unknown values instead of failing the request.
func (s *service) GetInstanceSpecs(ctx context.Context, names []string) ([]model.InstanceSpec, error) {
	var specs []model.InstanceSpec

	for start := 0; start < len(names); start += maxInstanceTypesPerRequest {
		end := min(start+maxInstanceTypesPerRequest, len(names))

		paginator := ec2.NewDescribeInstanceTypesPaginator(s.client, &ec2.DescribeInstanceTypesInput{
			Filters: []types.Filter{
				{
					Name:   aws.String("instance-type"),
					Values: names[start:end],
				},
			},
		})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("describing instance types: %w", err)
			}

			for _, it := range page.InstanceTypes {
				specs = append(specs, toInstanceSpec(it))
			}
		}
	}

	return specs, nil
}

func toInstanceSpec(it types.InstanceTypeInfo) model.InstanceSpec {
	spec := model.InstanceSpec{Name: string(it.InstanceType)}
	if it.VCpuInfo != nil {
		spec.VCPUs = aws.ToInt32(it.VCpuInfo.DefaultVCpus)
	}
	if it.MemoryInfo != nil {
		spec.Memory = aws.ToInt64(it.MemoryInfo.SizeInMiB)
	}
	return spec
}
