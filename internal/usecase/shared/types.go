package shared

import (
	"context"

	"venue-booking/internal/domain/booking"
)

type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
	EventBookingDeleted       EventType = "booking.deleted"
)

// BookingEvent is pushed to live admin clients after a successful write.
// Booking is nil for deletions.
type BookingEvent struct {
	Type      EventType
	BookingID string
	Booking   *booking.Booking
}

type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) {}
