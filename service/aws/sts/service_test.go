package awssts

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSTS struct {
	output *sts.GetCallerIdentityOutput
	err    error
}

func (f fakeSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.output, f.err
}

func TestGetAccountInfo(t *testing.T) {
	s := &service{client: fakeSTS{output: &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:iam::123456789012:user/ops"),
	}}}

	info, err := s.GetAccountInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "aws", info.Provider)
	assert.Equal(t, "123456789012", info.AccountID)
	assert.Equal(t, "arn:aws:iam::123456789012:user/ops", info.AccountName)
}

func TestGetAccountInfo_Error(t *testing.T) {
	s := &service{client: fakeSTS{err: errors.New("expired token")}}

	_, err := s.GetAccountInfo(context.Background())
	assert.ErrorContains(t, err, "expired token")
}
