package shared

import (
	"context"

	"venue-booking/internal/domain/booking"
)

type UnitOfWork interface {
	// Within: serialized read-modify-write over the booking store
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Bookings: plain reads outside the critical section
	Bookings() BookingRepository
}

type Tx interface {
	Bookings() BookingRepository
}

type BookingRepository interface {
	ListAll(ctx context.Context) ([]*booking.Booking, error)
	FindByID(ctx context.Context, id string) (*booking.Booking, error)
	Append(ctx context.Context, b *booking.Booking) error
	UpdateStatus(ctx context.Context, id string, status booking.Status) (*booking.Booking, error)
	Remove(ctx context.Context, id string) error
}
