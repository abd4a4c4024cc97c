package kvstore

import (
	"context"
	"errors"

	"venue-booking/internal/pkg/clock"
	"venue-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgGet    = `SELECT value FROM kv_entries WHERE key = $1`
	pgUpsert = `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db    DBTX
	clock clock.Clock
}

func NewPostgresStore(db DBTX, clk clock.Clock) *PostgresStore {
	return &PostgresStore{db: db, clock: clk}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, pgGet, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrapf(err, "kv get %q", key)
	}
	return []byte(value), true, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.Exec(ctx, pgUpsert, key, string(value), s.clock.Now().UTC()); err != nil {
		return errs.Wrapf(err, "kv put %q", key)
	}
	return nil
}
