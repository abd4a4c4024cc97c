package response

import (
	"time"

	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	TimeLabel      string    `json:"timeLabel"`
	Guests         string    `json:"guests"`
	GuestsLabel    string    `json:"guestsLabel"`
	EventType      string    `json:"eventType"`
	EventTypeLabel string    `json:"eventTypeLabel"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	Status         string    `json:"status"`
	StatusLabel    string    `json:"statusLabel"`
}

// FromBookingView copies a view whose field names match the response one to one.
func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	res := &BookingResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map booking view")
	}
	return res, nil
}

type BookingCountsResponse struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
}

type BookingListResponse struct {
	Bookings []*BookingResponse    `json:"bookings"`
	Counts   BookingCountsResponse `json:"counts"`
	Degraded bool                  `json:"degraded"`
}

func FromBookingList(l *queries.BookingList) (*BookingListResponse, error) {
	res := &BookingListResponse{
		Bookings: make([]*BookingResponse, len(l.Bookings)),
		Degraded: l.Degraded,
	}
	if err := copier.Copy(&res.Counts, &l.Counts); err != nil {
		return nil, errs.Wrap(err, "map booking counts")
	}
	for i, v := range l.Bookings {
		b, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res.Bookings[i] = b
	}
	return res, nil
}

type NotificationResponse struct {
	// delivered | failed | pending
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

type SubmitBookingResponse struct {
	Booking      *BookingResponse      `json:"booking"`
	Notification *NotificationResponse `json:"notification"`
}

type SlotAvailabilityResponse struct {
	Time      string `json:"time"`
	Label     string `json:"label"`
	Window    string `json:"window"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	Date     string                     `json:"date"`
	Past     bool                       `json:"past"`
	Slots    []SlotAvailabilityResponse `json:"slots"`
	Degraded bool                       `json:"degraded"`
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	res := &AvailabilityResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map availability view")
	}
	if res.Slots == nil {
		res.Slots = []SlotAvailabilityResponse{}
	}
	return res, nil
}

type OptionResponse struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Window string `json:"window,omitempty"`
}

type CatalogResponse struct {
	Locale      string           `json:"locale"`
	TimeSlots   []OptionResponse `json:"timeSlots"`
	GuestRanges []OptionResponse `json:"guestRanges"`
	EventTypes  []OptionResponse `json:"eventTypes"`
	Statuses    []OptionResponse `json:"statuses"`
}

func FromCatalogView(v *queries.CatalogView) (*CatalogResponse, error) {
	res := &CatalogResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map catalog view")
	}
	return res, nil
}

type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
