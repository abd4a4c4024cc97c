package booking

import "errors"

var (
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTimeSlot   = errors.New("invalid time slot")
	ErrInvalidGuestRange = errors.New("invalid guest range")
	ErrInvalidEventType  = errors.New("invalid event type")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled}
}

// TimeSlot is one of the four fixed day buckets a booking can request.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

func (t TimeSlot) String() string {
	return string(t)
}

func (t TimeSlot) IsValid() bool {
	switch t {
	case SlotMorning, SlotAfternoon, SlotEvening, SlotNight:
		return true
	default:
		return false
	}
}

func NewTimeSlot(s string) (TimeSlot, error) {
	slot := TimeSlot(s)
	if !slot.IsValid() {
		return "", ErrInvalidTimeSlot
	}
	return slot, nil
}

func AllTimeSlots() []TimeSlot {
	return []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}
}

type GuestRange string

const (
	Guests1To50    GuestRange = "1-50"
	Guests51To100  GuestRange = "51-100"
	Guests101To150 GuestRange = "101-150"
	Guests151To200 GuestRange = "151-200"
	Guests201Plus  GuestRange = "201+"
)

func (g GuestRange) String() string {
	return string(g)
}

func (g GuestRange) IsValid() bool {
	switch g {
	case Guests1To50, Guests51To100, Guests101To150, Guests151To200, Guests201Plus:
		return true
	default:
		return false
	}
}

func NewGuestRange(s string) (GuestRange, error) {
	g := GuestRange(s)
	if !g.IsValid() {
		return "", ErrInvalidGuestRange
	}
	return g, nil
}

func AllGuestRanges() []GuestRange {
	return []GuestRange{Guests1To50, Guests51To100, Guests101To150, Guests151To200, Guests201Plus}
}

type EventType string

const (
	EventWedding     EventType = "wedding"
	EventCorporate   EventType = "corporate"
	EventBirthday    EventType = "birthday"
	EventAnniversary EventType = "anniversary"
	EventGraduation  EventType = "graduation"
	EventOther       EventType = "other"
)

func (e EventType) String() string {
	return string(e)
}

func (e EventType) IsValid() bool {
	switch e {
	case EventWedding, EventCorporate, EventBirthday, EventAnniversary, EventGraduation, EventOther:
		return true
	default:
		return false
	}
}

func NewEventType(s string) (EventType, error) {
	e := EventType(s)
	if !e.IsValid() {
		return "", ErrInvalidEventType
	}
	return e, nil
}

func AllEventTypes() []EventType {
	return []EventType{EventWedding, EventCorporate, EventBirthday, EventAnniversary, EventGraduation, EventOther}
}
