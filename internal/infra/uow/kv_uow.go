package uow

import (
	"context"
	"log/slog"
	"sync"

	"venue-booking/internal/infra/kvstore"
	"venue-booking/internal/infra/repository"
	"venue-booking/internal/usecase/shared"
)

// KVUoW serializes every read-modify-write cycle on the key-value namespace
// within this process. Each write replaces the whole collection in one Put.
type KVUoW struct {
	store  kvstore.Store
	logger *slog.Logger
	mu     sync.Mutex
}

func NewKVUoW(store kvstore.Store, logger *slog.Logger) shared.UnitOfWork {
	return &KVUoW{
		store:  store,
		logger: logger,
	}
}

func (u *KVUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	return fn(ctx, &kvTx{uow: u})
}

func (u *KVUoW) Bookings() shared.BookingRepository {
	return repository.NewBookingRepository(u.store, u.logger)
}

type kvTx struct {
	uow *KVUoW

	// Lazy-initialized repositories
	bookingRepo shared.BookingRepository
}

func (t *kvTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.uow.store, t.uow.logger)
	}
	return t.bookingRepo
}
