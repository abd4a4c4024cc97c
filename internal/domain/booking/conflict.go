package booking

import "errors"

var ErrInvalidConflictPolicy = errors.New("invalid conflict policy")

// ConflictPolicy decides which statuses hold a slot. Confirmed bookings always do.
type ConflictPolicy string

const (
	// PolicyConfirmedOnly lets pending requests pile up on a slot until one is confirmed.
	PolicyConfirmedOnly ConflictPolicy = "confirmed"
	// PolicyActive blocks on any booking that is not cancelled.
	PolicyActive ConflictPolicy = "active"
)

func NewConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(s); p {
	case PolicyConfirmedOnly, PolicyActive:
		return p, nil
	default:
		return "", ErrInvalidConflictPolicy
	}
}

func (p ConflictPolicy) Blocks(s Status) bool {
	switch s {
	case StatusConfirmed:
		return true
	case StatusPending:
		return p == PolicyActive
	default:
		return false
	}
}

// FindConflict returns the first booking holding (date, slot) under the policy.
// Matching is exact on the ISO date and the bucket name; overlapping clock
// windows such as evening and night never conflict.
func FindConflict(bookings []*Booking, date string, slot TimeSlot, policy ConflictPolicy) *Booking {
	for _, b := range bookings {
		if b.OccupiesSlot(date, slot) && policy.Blocks(b.status) {
			return b
		}
	}
	return nil
}

func HasConflict(bookings []*Booking, date string, slot TimeSlot, policy ConflictPolicy) bool {
	return FindConflict(bookings, date, slot, policy) != nil
}

// ConfirmedElsewhere reports whether a booking other than exceptID is confirmed on the slot.
func ConfirmedElsewhere(bookings []*Booking, exceptID, date string, slot TimeSlot) bool {
	for _, b := range bookings {
		if b.id != exceptID && b.status == StatusConfirmed && b.OccupiesSlot(date, slot) {
			return true
		}
	}
	return false
}

type SlotAvailability struct {
	Slot      TimeSlot
	Available bool
}

func Availability(bookings []*Booking, date string, policy ConflictPolicy) []SlotAvailability {
	slots := AllTimeSlots()
	result := make([]SlotAvailability, len(slots))
	for i, s := range slots {
		result[i] = SlotAvailability{Slot: s, Available: !HasConflict(bookings, date, s, policy)}
	}
	return result
}
