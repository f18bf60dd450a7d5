package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/elC0mpa/ecs-chargeback/model"
	svc "github.com/elC0mpa/ecs-chargeback/service"
)

// NewService returns an instance type cache on top of store. A nil store
// disables caching: every Load misses and Store does nothing.
func NewService(store svc.BlobStore, prefix string, ttl time.Duration, logger *slog.Logger) *service {
	return &service{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (s *service) Key(cluster string) string {
	if s.prefix == "" {
		return cluster + ".json"
	}
	return s.prefix + "/" + cluster + ".json"
}

// Load returns the cached instance types of cluster when an entry younger
// than the TTL exists. Missing or expired entries are a miss, not an error.
func (s *service) Load(ctx context.Context, cluster string) ([]model.InstanceTypeRecord, bool, error) {
	if s.store == nil {
		return nil, false, nil
	}

	key := s.Key(cluster)
	modified, err := s.store.LastModified(ctx, key)
	if errors.Is(err, svc.ErrBlobNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	if s.now().Sub(modified) >= s.ttl {
		s.logger.Debug("cache entry expired", "cluster", cluster, "key", key, "modified", modified)
		return nil, false, nil
	}

	body, err := s.store.Get(ctx, key)
	if errors.Is(err, svc.ErrBlobNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	var records []model.InstanceTypeRecord
	if err := json.Unmarshal(body, &records); err != nil {
		s.logger.Warn("ignoring unreadable cache entry", "cluster", cluster, "key", key, "error", err)
		return nil, false, nil
	}

	return records, true, nil
}

// Store replaces the cache entry of cluster with records
func (s *service) Store(ctx context.Context, cluster string, records []model.InstanceTypeRecord) error {
	if s.store == nil {
		return nil
	}

	if records == nil {
		records = []model.InstanceTypeRecord{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding instance types: %w", err)
	}

	if err := s.store.Put(ctx, s.Key(cluster), body); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}
	return nil
}
