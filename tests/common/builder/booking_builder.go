//go:build unit || e2e

package builder

import (
	"fmt"
	"sync/atomic"
	"time"

	"venue-booking/internal/domain/booking"
	reqdto "venue-booking/internal/handler/dto/request"
	"venue-booking/internal/infra/repository/converter"
	"venue-booking/internal/pkg/clock"
)

// FixedNow is the instant every builder-made service considers "now".
var FixedNow = time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)

// SequenceIDs hands out "bk-1", "bk-2", ... so assertions can name ids.
type SequenceIDs struct {
	n atomic.Int64
}

func (s *SequenceIDs) NewID() string {
	return fmt.Sprintf("bk-%d", s.n.Add(1))
}

func NewServices() *booking.Services {
	return NewServicesWithPolicy(booking.PolicyConfirmedOnly)
}

func NewServicesWithPolicy(policy booking.ConflictPolicy) *booking.Services {
	return &booking.Services{
		Clock:    clock.NewMockClock(FixedNow),
		Location: time.UTC,
		IDs:      &SequenceIDs{},
		Policy:   policy,
		Locale:   booking.LocaleIT,
	}
}

type BookingBuilder struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Date      string
	Time      string
	Guests    string
	EventType string
	Message   string
	CreatedAt time.Time
	Status    string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:        "bk-1",
		Name:      "Mario Rossi",
		Email:     "mario@example.com",
		Phone:     "3331234567",
		Date:      "2030-06-15",
		Time:      "evening",
		Guests:    "51-100",
		EventType: "wedding",
		Message:   "",
		CreatedAt: FixedNow,
		Status:    "pending",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Params() booking.NewBookingParams {
	return booking.NewBookingParams{
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Date:      b.Date,
		Time:      b.Time,
		Guests:    b.Guests,
		EventType: b.EventType,
		Message:   b.Message,
	}
}

// BuildDomain runs full validation against services.
func (b *BookingBuilder) BuildDomain(services *booking.Services) (*booking.Booking, error) {
	return booking.NewBooking(services, b.Params())
}

// BuildStored skips validation, like a record read back from storage.
func (b *BookingBuilder) BuildStored() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID, b.Name, b.Email, b.Phone, b.Date,
		booking.TimeSlot(b.Time),
		booking.GuestRange(b.Guests),
		booking.EventType(b.EventType),
		b.Message,
		b.CreatedAt,
		booking.Status(b.Status),
	)
}

func (b *BookingBuilder) BuildRecord() converter.Record {
	return converter.BookingToRecord(b.BuildStored())
}

func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Date:      b.Date,
		Time:      b.Time,
		Guests:    b.Guests,
		EventType: b.EventType,
		Message:   b.Message,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id string) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithName(name string) *BookingBuilder {
	b.Name = name
	return b
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.Email = email
	return b
}

func (b *BookingBuilder) WithPhone(phone string) *BookingBuilder {
	b.Phone = phone
	return b
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.Date = date
	return b
}

func (b *BookingBuilder) WithTime(slot string) *BookingBuilder {
	b.Time = slot
	return b
}

func (b *BookingBuilder) WithGuests(guests string) *BookingBuilder {
	b.Guests = guests
	return b
}

func (b *BookingBuilder) WithEventType(eventType string) *BookingBuilder {
	b.EventType = eventType
	return b
}

func (b *BookingBuilder) WithMessage(message string) *BookingBuilder {
	b.Message = message
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}
