package kvstore

import (
	"context"
	"database/sql"
	"errors"

	"venue-booking/internal/pkg/clock"
	"venue-booking/internal/pkg/errs"
)

const (
	sqlGet    = `SELECT value FROM kv_entries WHERE key = ?`
	sqlUpsert = `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SQLStore persists entries in the kv_entries table of a database/sql handle (SQLite).
type SQLStore struct {
	db    *sql.DB
	clock clock.Clock
}

func NewSQLStore(db *sql.DB, clk clock.Clock) *SQLStore {
	return &SQLStore{db: db, clock: clk}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, sqlGet, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrapf(err, "kv get %q", key)
	}
	return []byte(value), true, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, sqlUpsert, key, string(value), s.clock.Now().UTC()); err != nil {
		return errs.Wrapf(err, "kv put %q", key)
	}
	return nil
}
