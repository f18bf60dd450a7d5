package sqlitestore

import (
	"context"
	"database/sql"
	"time"
)

type service struct {
	db  *sql.DB
	now func() time.Time
}

type SQLiteService interface {
	LastModified(ctx context.Context, key string) (time.Time, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	Close() error
}
