package converter

import (
	"fmt"
	"time"

	"venue-booking/internal/domain/booking"
)

// Record is the persisted shape of one booking inside the "bookings" array.
type Record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Guests    string `json:"guests"`
	EventType string `json:"eventType"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"createdAt"`
	Status    string `json:"status"`
}

func BookingToRecord(b *booking.Booking) Record {
	return Record{
		ID:        b.ID(),
		Name:      b.Name().String(),
		Email:     b.Email().String(),
		Phone:     b.Phone().String(),
		Date:      b.Date().String(),
		Time:      string(b.Slot()),
		Guests:    string(b.Guests()),
		EventType: string(b.EventType()),
		Message:   b.Message().String(),
		CreatedAt: b.CreatedAt().UTC().Format(booking.CreatedAtLayout),
		Status:    string(b.Status()),
	}
}

func RecordToBooking(r Record) (*booking.Booking, error) {
	slot, err := booking.NewTimeSlot(r.Time)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	guests, err := booking.NewGuestRange(r.Guests)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	eventType, err := booking.NewEventType(r.EventType)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	status, err := booking.NewStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}

	// tolerate timestamps written by other clients
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return booking.ReconstructBooking(
		r.ID, r.Name, r.Email, r.Phone, r.Date,
		slot, guests, eventType, r.Message, createdAt, status,
	), nil
}
