package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// SQLStore keeps key/value pairs in the kv_store table created by the database migrations.
type SQLStore struct {
	db      *sql.DB
	queries sqlQueries
}

type sqlQueries struct {
	get string
	set string
}

var sqliteQueries = sqlQueries{
	get: `SELECT value FROM kv_store WHERE key = ?`,
	set: `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		  ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
}

var postgresQueries = sqlQueries{
	get: `SELECT value FROM kv_store WHERE key = $1`,
	set: `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, $3)
		  ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
}

// NewSQLStore returns a store for the given driver name ("sqlite" or "postgres").
func NewSQLStore(db *sql.DB, driver string) (*SQLStore, error) {
	switch driver {
	case "sqlite":
		return &SQLStore{db: db, queries: sqliteQueries}, nil
	case "postgres":
		return &SQLStore{db: db, queries: postgresQueries}, nil
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.queries.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		err := fmt.Errorf("could not read key %s: %w", key, err)
		log.Error(err)
		return "", err
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value string) error {
	_, err := s.db.ExecContext(ctx, s.queries.set, key, value, time.Now().UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not write key %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}
