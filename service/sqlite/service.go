package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	svc "github.com/elC0mpa/ecs-chargeback/service"
	_ "modernc.org/sqlite"
)

// NewService opens (or creates) the cache database at path
func NewService(path string) (*service, error) {
	if path == "" {
		return nil, fmt.Errorf("cache database path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating blobs table: %w", err)
	}

	return &service{db: db, now: time.Now}, nil
}

func (s *service) LastModified(ctx context.Context, key string) (time.Time, error) {
	var updatedAt int64
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM blobs WHERE key = ?`, key).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%s: %w", key, svc.ErrBlobNotFound)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading %s: %w", key, err)
	}

	return time.UnixMilli(updatedAt), nil
}

func (s *service) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM blobs WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, svc.ErrBlobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	return body, nil
}

func (s *service) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO blobs (key, body, updated_at) VALUES (?, ?, ?)`,
		key, body, s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *service) Close() error {
	return s.db.Close()
}
