package service

import (
	"context"
	"errors"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
)

// ErrBlobNotFound is returned by a BlobStore when the requested key does not exist
var ErrBlobNotFound = errors.New("blob not found")

// IdentityService provides AWS account identity information
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
}

// BillingService provides running-hours cost and usage grouped by instance type
type BillingService interface {
	GetRunningHoursByInstanceType(ctx context.Context, clusterTagKey, clusterName string, lookback time.Duration) ([]model.UsageGroup, error)
}

// InstanceSpecService provides hardware specs for instance types. Unknown
// names are simply absent from the result.
type InstanceSpecService interface {
	GetInstanceSpecs(ctx context.Context, names []string) ([]model.InstanceSpec, error)
}

// ClusterService enumerates clusters and the services running on them
type ClusterService interface {
	ListClusters(ctx context.Context) ([]string, error)
	GetServices(ctx context.Context, cluster string) ([]model.Service, error)
}

// MetricsService fetches utilization series for a batch of queries over
// [end - lookback, end]
type MetricsService interface {
	GetMetricSeries(ctx context.Context, queries []model.MetricQuery, lookback time.Duration, period int32, stat string) ([]model.MetricSeries, error)
}

// BlobStore is a keyed blob storage with last-modified timestamps
type BlobStore interface {
	LastModified(ctx context.Context, key string) (time.Time, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
}

// MetricSink delivers per-service chargeback metrics to a monitoring backend
type MetricSink interface {
	Emit(ctx context.Context, report *model.ClusterReport) error
}
