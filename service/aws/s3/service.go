package awss3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	svc "github.com/elC0mpa/ecs-chargeback/service"
)

func NewService(awsconfig aws.Config, bucket string) *service {
	client := s3.NewFromConfig(awsconfig)
	return &service{
		client: client,
		bucket: bucket,
	}
}

func (s *service) LastModified(ctx context.Context, key string) (time.Time, error) {
	output, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return time.Time{}, s.translateError(key, err)
	}
	if output.LastModified == nil {
		return time.Time{}, fmt.Errorf("s3://%s/%s has no last modified time", s.bucket, key)
	}

	return *output.LastModified, nil
}

func (s *service) Get(ctx context.Context, key string) ([]byte, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.translateError(key, err)
	}
	defer output.Body.Close()

	body, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3://%s/%s: %w", s.bucket, key, err)
	}
	return body, nil
}

func (s *service) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("writing s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func (s *service) translateError(key string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("s3://%s/%s: %w", s.bucket, key, svc.ErrBlobNotFound)
	}
	return fmt.Errorf("s3://%s/%s: %w", s.bucket, key, err)
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "404":
			return true
		}
	}
	return false
}
