package queries

import (
	"context"
	"log/slog"
	"time"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/infra"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/shared"
)

var (
	ErrBookingNotFound     = shared.ErrBookingNotFound
	ErrBookingReadFailed   = shared.ErrPersistenceFailed
	ErrInvalidStatusFilter = errs.New("invalid status filter")
	ErrInvalidDate         = errs.New("invalid date")
)

type BookingView struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Date           string
	Time           string
	TimeLabel      string
	Guests         string
	GuestsLabel    string
	EventType      string
	EventTypeLabel string
	Message        string
	CreatedAt      time.Time
	Status         string
	StatusLabel    string
}

func NewBookingView(b *booking.Booking, locale booking.Locale) *BookingView {
	return &BookingView{
		ID:             b.ID(),
		Name:           b.Name().String(),
		Email:          b.Email().String(),
		Phone:          b.Phone().String(),
		Date:           b.Date().String(),
		Time:           b.Slot().String(),
		TimeLabel:      b.Slot().Label(locale),
		Guests:         b.Guests().String(),
		GuestsLabel:    b.Guests().Label(locale),
		EventType:      b.EventType().String(),
		EventTypeLabel: b.EventType().Label(locale),
		Message:        b.Message().String(),
		CreatedAt:      b.CreatedAt(),
		Status:         b.Status().String(),
		StatusLabel:    b.Status().Label(locale),
	}
}

// BookingCounts backs the admin tabs.
type BookingCounts struct {
	All       int
	Pending   int
	Confirmed int
	Cancelled int
}

type BookingList struct {
	Bookings []*BookingView
	Counts   BookingCounts
	// Degraded is set when storage could not be read and an empty list is served.
	Degraded bool
}

type SlotAvailabilityView struct {
	Time      string
	Label     string
	Window    string
	Available bool
}

type AvailabilityView struct {
	Date     string
	Past     bool
	Slots    []SlotAvailabilityView
	Degraded bool
}

type BookingQueries interface {
	List(ctx context.Context, statusFilter string) (*BookingList, error)
	GetByID(ctx context.Context, id string) (*BookingView, error)
	Availability(ctx context.Context, date string) (*AvailabilityView, error)
}

type bookingQueriesImpl struct {
	repo     shared.BookingRepository
	services *booking.Services
	logger   *slog.Logger
}

func NewBookingQueries(uow shared.UnitOfWork, services *booking.Services, logger *slog.Logger) BookingQueries {
	return &bookingQueriesImpl{
		repo:     uow.Bookings(),
		services: services,
		logger:   logger,
	}
}

// List returns bookings in insertion order, optionally filtered by status.
// Counts always cover the whole collection.
func (q *bookingQueriesImpl) List(ctx context.Context, statusFilter string) (*BookingList, error) {
	var filter booking.Status
	if statusFilter != "" && statusFilter != "all" {
		s, err := booking.NewStatus(statusFilter)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidStatusFilter)
		}
		filter = s
	}

	all, degraded := q.loadDegradable(ctx)

	result := &BookingList{
		Bookings: make([]*BookingView, 0, len(all)),
		Degraded: degraded,
	}
	for _, b := range all {
		result.Counts.All++
		switch b.Status() {
		case booking.StatusPending:
			result.Counts.Pending++
		case booking.StatusConfirmed:
			result.Counts.Confirmed++
		case booking.StatusCancelled:
			result.Counts.Cancelled++
		}
		if filter == "" || b.Status() == filter {
			result.Bookings = append(result.Bookings, NewBookingView(b, q.services.Locale))
		}
	}
	return result, nil
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id string) (*BookingView, error) {
	b, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrBookingReadFailed)
	}
	return NewBookingView(b, q.services.Locale), nil
}

// Availability reports, per time bucket, whether a new request would be accepted.
// Dates before today are reported with every bucket unavailable.
func (q *bookingQueriesImpl) Availability(ctx context.Context, date string) (*AvailabilityView, error) {
	d, err := booking.ParseEventDate(date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	view := &AvailabilityView{
		Date: d.String(),
		Past: d.String() < q.services.Today().Format(booking.DateLayout),
	}

	all, degraded := q.loadDegradable(ctx)
	view.Degraded = degraded

	for _, sa := range booking.Availability(all, d.String(), q.services.Policy) {
		view.Slots = append(view.Slots, SlotAvailabilityView{
			Time:      sa.Slot.String(),
			Label:     sa.Slot.Label(q.services.Locale),
			Window:    sa.Slot.Window(),
			Available: sa.Available && !view.Past,
		})
	}
	return view, nil
}

func (q *bookingQueriesImpl) loadDegradable(ctx context.Context) ([]*booking.Booking, bool) {
	all, err := q.repo.ListAll(ctx)
	if err != nil {
		q.logger.Warn("serving empty booking list", slog.String("error", err.Error()))
		return nil, true
	}
	return all, false
}
