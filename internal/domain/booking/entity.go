package booking

import (
	"errors"
	"time"

	"venue-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator yields time-ordered ids, so insertion order and id order agree.
type UUIDv7Generator struct{}

func NewUUIDv7Generator() IDGenerator {
	return UUIDv7Generator{}
}

func (UUIDv7Generator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type Services struct {
	Clock    clock.Clock
	Location *time.Location
	IDs      IDGenerator
	Policy   ConflictPolicy
	Locale   Locale
}

func (s *Services) Today() time.Time {
	return clock.Today(s.Clock, s.location())
}

func (s *Services) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

type NewBookingParams struct {
	Name      string
	Email     string
	Phone     string
	Date      string
	Time      string
	Guests    string
	EventType string
	Message   string
}

type Booking struct {
	id        string
	name      Name
	email     Email
	phone     Phone
	date      EventDate
	slot      TimeSlot
	guests    GuestRange
	eventType EventType
	message   Message
	createdAt time.Time
	status    Status
}

// NewBooking validates every field and reports all failures joined together.
func NewBooking(services *Services, p NewBookingParams) (*Booking, error) {
	var fieldErrs []error
	collect := func(err error) {
		if err != nil {
			fieldErrs = append(fieldErrs, err)
		}
	}

	name, err := NewName(p.Name)
	collect(err)
	email, err := NewEmail(p.Email)
	collect(err)
	phone, err := NewPhone(p.Phone)
	collect(err)
	date, err := NewEventDate(p.Date, services.Today())
	collect(err)
	slot, err := NewTimeSlot(p.Time)
	collect(err)
	guests, err := NewGuestRange(p.Guests)
	collect(err)
	eventType, err := NewEventType(p.EventType)
	collect(err)
	message, err := NewMessage(p.Message)
	collect(err)

	if len(fieldErrs) > 0 {
		return nil, errors.Join(fieldErrs...)
	}

	return &Booking{
		id:        services.IDs.NewID(),
		name:      name,
		email:     email,
		phone:     phone,
		date:      date,
		slot:      slot,
		guests:    guests,
		eventType: eventType,
		message:   message,
		createdAt: services.Clock.Now().UTC(),
		status:    StatusPending,
	}, nil
}

// ReconstructBooking rebuilds a stored booking without re-validating it.
func ReconstructBooking(
	id, name, email, phone, date string,
	slot TimeSlot,
	guests GuestRange,
	eventType EventType,
	message string,
	createdAt time.Time,
	status Status,
) *Booking {
	return &Booking{
		id:        id,
		name:      Name{value: name},
		email:     Email{value: email},
		phone:     Phone{value: phone},
		date:      EventDate{value: date},
		slot:      slot,
		guests:    guests,
		eventType: eventType,
		message:   Message{value: message},
		createdAt: createdAt,
		status:    status,
	}
}

func (b *Booking) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	b.status = status
	return nil
}

func (b *Booking) OccupiesSlot(date string, slot TimeSlot) bool {
	return b.date.value == date && b.slot == slot
}

func (b *Booking) ID() string           { return b.id }
func (b *Booking) Name() Name           { return b.name }
func (b *Booking) Email() Email         { return b.email }
func (b *Booking) Phone() Phone         { return b.phone }
func (b *Booking) Date() EventDate      { return b.date }
func (b *Booking) Slot() TimeSlot       { return b.slot }
func (b *Booking) Guests() GuestRange   { return b.guests }
func (b *Booking) EventType() EventType { return b.eventType }
func (b *Booking) Message() Message     { return b.message }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) Status() Status       { return b.status }
