//go:build unit

package kvstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"venue-booking/internal/infra/kvstore"
	"venue-booking/internal/pkg/clock"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

type fakeDBTX struct {
	row      fakeRow
	execErr  error
	execArgs []any
}

func (f *fakeDBTX) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	f.execArgs = args
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeDBTX) QueryRow(context.Context, string, ...any) pgx.Row {
	return f.row
}

func TestPostgresStore(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	t.Run("no rows means not found", func(t *testing.T) {
		store := kvstore.NewPostgresStore(&fakeDBTX{row: fakeRow{err: pgx.ErrNoRows}}, clk)
		_, found, err := store.Get(t.Context(), "bookings")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("query failure is surfaced", func(t *testing.T) {
		boom := errors.New("connection reset")
		store := kvstore.NewPostgresStore(&fakeDBTX{row: fakeRow{err: boom}}, clk)
		_, _, err := store.Get(t.Context(), "bookings")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("value is returned", func(t *testing.T) {
		store := kvstore.NewPostgresStore(&fakeDBTX{row: fakeRow{value: "[]"}}, clk)
		value, found, err := store.Get(t.Context(), "bookings")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "[]", string(value))
	})

	t.Run("put stamps updated_at from the clock", func(t *testing.T) {
		fake := &fakeDBTX{}
		store := kvstore.NewPostgresStore(fake, clk)
		require.NoError(t, store.Put(t.Context(), "bookings", []byte("[]")))
		assert.Equal(t, []any{"bookings", "[]", now}, fake.execArgs)
	})

	t.Run("put failure is surfaced", func(t *testing.T) {
		boom := errors.New("read only")
		store := kvstore.NewPostgresStore(&fakeDBTX{execErr: boom}, clk)
		assert.ErrorIs(t, store.Put(t.Context(), "bookings", []byte("[]")), boom)
	})
}
