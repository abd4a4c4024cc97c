//go:build unit

package repository_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/infra"
	"venue-booking/internal/infra/kvstore"
	"venue-booking/internal/infra/repository"
	"venue-booking/internal/infra/repository/converter"
	"venue-booking/tests/common/builder"
	kvstoremock "venue-booking/tests/mock/kvstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func seed(t *testing.T, store kvstore.Store, records ...converter.Record) {
	t.Helper()
	raw, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), repository.BookingsKey, raw))
}

func storedRecords(t *testing.T, store kvstore.Store) []converter.Record {
	t.Helper()
	raw, found, err := store.Get(context.Background(), repository.BookingsKey)
	require.NoError(t, err)
	require.True(t, found)
	var records []converter.Record
	require.NoError(t, json.Unmarshal(raw, &records))
	return records
}

func statuses(records []converter.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Status)
	}
	return out
}

func ids(bookings []*booking.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID())
	}
	return out
}

func TestBookingRepository_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("never written namespace is empty", func(t *testing.T) {
		repo := repository.NewBookingRepository(kvstore.NewMemory(), discard)
		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("insertion order is kept", func(t *testing.T) {
		store := kvstore.NewMemory()
		seed(t, store,
			builder.NewBookingBuilder().WithID("c").BuildRecord(),
			builder.NewBookingBuilder().WithID("a").BuildRecord(),
			builder.NewBookingBuilder().WithID("b").BuildRecord(),
		)
		repo := repository.NewBookingRepository(store, discard)

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff([]string{"c", "a", "b"}, ids(got)); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unreadable record is skipped", func(t *testing.T) {
		store := kvstore.NewMemory()
		broken := builder.NewBookingBuilder().WithID("broken").BuildRecord()
		broken.Time = "brunch"
		seed(t, store,
			builder.NewBookingBuilder().WithID("ok").BuildRecord(),
			broken,
		)
		var logs bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := repository.NewBookingRepository(store, logger)

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"ok"}, ids(got))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
		assert.Equal(t, "ERROR", entry["level"])
		assert.Equal(t, "skipping unreadable booking record", entry["msg"])
		assert.Equal(t, "broken", entry["id"])
	})

	t.Run("json null is an empty list", func(t *testing.T) {
		store := kvstore.NewMemory()
		require.NoError(t, store.Put(ctx, repository.BookingsKey, []byte("null")))
		repo := repository.NewBookingRepository(store, discard)

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed payload is corrupted", func(t *testing.T) {
		store := kvstore.NewMemory()
		require.NoError(t, store.Put(ctx, repository.BookingsKey, []byte("{not json")))
		repo := repository.NewBookingRepository(store, discard)

		_, err := repo.ListAll(ctx)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindCorrupted))
	})

	t.Run("read failure is a db failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := kvstoremock.NewMockStore(ctrl)
		store.EXPECT().Get(gomock.Any(), repository.BookingsKey).Return(nil, false, errors.New("disk unplugged"))
		repo := repository.NewBookingRepository(store, discard)

		_, err := repo.ListAll(ctx)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestBookingRepository_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("appends at the end and persists the wire shape", func(t *testing.T) {
		store := kvstore.NewMemory()
		repo := repository.NewBookingRepository(store, discard)

		require.NoError(t, repo.Append(ctx, builder.NewBookingBuilder().WithID("first").BuildStored()))
		require.NoError(t, repo.Append(ctx, builder.NewBookingBuilder().WithID("second").WithEmail("").BuildStored()))

		raw, found, err := store.Get(ctx, repository.BookingsKey)
		require.NoError(t, err)
		require.True(t, found)

		var generic []map[string]any
		require.NoError(t, json.Unmarshal(raw, &generic))
		require.Len(t, generic, 2)
		assert.Equal(t, "first", generic[0]["id"])
		assert.Equal(t, "evening", generic[0]["time"])
		assert.Equal(t, "wedding", generic[0]["eventType"])
		assert.Equal(t, "2030-06-01T10:00:00Z", generic[0]["createdAt"])
		assert.NotContains(t, generic[1], "email")
		assert.NotContains(t, generic[1], "message")
	})

	t.Run("write failure is a db failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := kvstoremock.NewMockStore(ctrl)
		store.EXPECT().Get(gomock.Any(), repository.BookingsKey).Return(nil, false, nil)
		store.EXPECT().Put(gomock.Any(), repository.BookingsKey, gomock.Any()).Return(errors.New("quota exceeded"))
		repo := repository.NewBookingRepository(store, discard)

		err := repo.Append(ctx, builder.NewBookingBuilder().BuildStored())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("corrupted payload is never overwritten", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := kvstoremock.NewMockStore(ctrl)
		store.EXPECT().Get(gomock.Any(), repository.BookingsKey).Return([]byte("{oops"), true, nil)
		repo := repository.NewBookingRepository(store, discard)

		err := repo.Append(ctx, builder.NewBookingBuilder().BuildStored())
		assert.True(t, infra.IsKind(err, infra.KindCorrupted))
	})
}

func TestBookingRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	seed(t, store,
		builder.NewBookingBuilder().WithID("a").WithName("Anna Bianchi").BuildRecord(),
	)
	repo := repository.NewBookingRepository(store, discard)

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Anna Bianchi", got.Name().String())
	assert.Equal(t, builder.FixedNow, got.CreatedAt())

	_, err = repo.FindByID(ctx, "missing")
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("only the status of the target changes", func(t *testing.T) {
		store := kvstore.NewMemory()
		seed(t, store,
			builder.NewBookingBuilder().WithID("a").WithMessage("primo").BuildRecord(),
			builder.NewBookingBuilder().WithID("b").WithName("Anna Bianchi").WithEmail("anna@example.com").
				WithTime("afternoon").WithGuests("101-150").WithEventType("birthday").WithMessage("torta").BuildRecord(),
			builder.NewBookingBuilder().WithID("c").WithStatus("cancelled").BuildRecord(),
		)
		before := storedRecords(t, store)
		repo := repository.NewBookingRepository(store, discard)

		updated, err := repo.UpdateStatus(ctx, "b", booking.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, updated.Status())

		after := storedRecords(t, store)
		require.Len(t, after, len(before))
		if diff := cmp.Diff(before, after, cmpopts.IgnoreFields(converter.Record{}, "Status")); diff != "" {
			t.Errorf("records changed beyond status (-before +after):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"pending", "confirmed", "cancelled"}, statuses(after)); diff != "" {
			t.Errorf("statuses mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown id is not found and nothing is written", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := kvstoremock.NewMockStore(ctrl)
		raw, _ := json.Marshal([]converter.Record{builder.NewBookingBuilder().BuildRecord()})
		store.EXPECT().Get(gomock.Any(), repository.BookingsKey).Return(raw, true, nil)
		repo := repository.NewBookingRepository(store, discard)

		_, err := repo.UpdateStatus(ctx, "ghost", booking.StatusCancelled)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestBookingRepository_Remove(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	seed(t, store,
		builder.NewBookingBuilder().WithID("a").BuildRecord(),
		builder.NewBookingBuilder().WithID("b").BuildRecord(),
		builder.NewBookingBuilder().WithID("c").BuildRecord(),
	)
	repo := repository.NewBookingRepository(store, discard)

	require.NoError(t, repo.Remove(ctx, "b"))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(all))

	err = repo.Remove(ctx, "b")
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}
