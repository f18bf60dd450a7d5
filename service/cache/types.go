package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
	svc "github.com/elC0mpa/ecs-chargeback/service"
)

// ErrCacheUnavailable wraps every cache backend failure other than a missing entry
var ErrCacheUnavailable = errors.New("cache unavailable")

type service struct {
	store  svc.BlobStore
	prefix string
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

type CacheService interface {
	Key(cluster string) string
	Load(ctx context.Context, cluster string) ([]model.InstanceTypeRecord, bool, error)
	Store(ctx context.Context, cluster string, records []model.InstanceTypeRecord) error
}
