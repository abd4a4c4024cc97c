package commands

import (
	"context"
	"log/slog"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/infra"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/notification"
	"venue-booking/internal/usecase/queries"
	"venue-booking/internal/usecase/shared"
)

var (
	ErrValidation           = errs.New("booking validation failed")
	ErrSlotUnavailable      = errs.New("slot unavailable")
	ErrInvalidStatus        = errs.New("invalid booking status")
	ErrSlotAlreadyConfirmed = errs.New("slot already has a confirmed booking")
	ErrBookingNotFound      = shared.ErrBookingNotFound
	ErrPersistenceFailed    = shared.ErrPersistenceFailed
)

type SubmitInput struct {
	Name      string
	Email     string
	Phone     string
	Date      string
	Time      string
	Guests    string
	EventType string
	Message   string
}

type SubmitResult struct {
	Booking *queries.BookingView
	// Notification yields the delivery outcome once; it may be ignored.
	Notification <-chan notification.Outcome
}

// NotificationDispatcher starts a detached notification for a freshly stored booking.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, b *booking.Booking) <-chan notification.Outcome
}

type TestNotifier interface {
	SendTest(ctx context.Context) notification.Outcome
}

type BookingCommands interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	ChangeStatus(ctx context.Context, id, status string) (*queries.BookingView, error)
	Delete(ctx context.Context, id string) error
	SendTestNotification(ctx context.Context) notification.Outcome
}

type bookingCommandsImpl struct {
	uow        shared.UnitOfWork
	services   *booking.Services
	dispatcher NotificationDispatcher
	tester     TestNotifier
	publisher  shared.EventPublisher
	logger     *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	services *booking.Services,
	dispatcher NotificationDispatcher,
	tester TestNotifier,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:        uow,
		services:   services,
		dispatcher: dispatcher,
		tester:     tester,
		publisher:  publisher,
		logger:     logger,
	}
}

// Submit validates, checks the slot and appends in one critical section.
// The notification starts only after the booking is stored.
func (uc *bookingCommandsImpl) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	b, err := booking.NewBooking(uc.services, booking.NewBookingParams{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Date:      in.Date,
		Time:      in.Time,
		Guests:    in.Guests,
		EventType: in.EventType,
		Message:   in.Message,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Bookings().ListAll(ctx)
		if err != nil {
			return errs.Mark(err, ErrPersistenceFailed)
		}

		if conflict := booking.FindConflict(existing, b.Date().String(), b.Slot(), uc.services.Policy); conflict != nil {
			uc.logger.Info("booking rejected, slot taken",
				slog.String("date", b.Date().String()),
				slog.String("time", b.Slot().String()),
				slog.String("conflicting_id", conflict.ID()))
			return ErrSlotUnavailable
		}

		if err := tx.Bookings().Append(ctx, b); err != nil {
			return errs.Mark(err, ErrPersistenceFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("booking created",
		slog.String("booking_id", b.ID()),
		slog.String("date", b.Date().String()),
		slog.String("time", b.Slot().String()))

	uc.publisher.Publish(ctx, shared.BookingEvent{
		Type:      shared.EventBookingCreated,
		BookingID: b.ID(),
		Booking:   b,
	})

	return &SubmitResult{
		Booking:      queries.NewBookingView(b, uc.services.Locale),
		Notification: uc.dispatcher.Dispatch(ctx, b),
	}, nil
}

func (uc *bookingCommandsImpl) ChangeStatus(ctx context.Context, id, status string) (*queries.BookingView, error) {
	newStatus, err := booking.NewStatus(status)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStatus)
	}

	var updated *booking.Booking
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Bookings()

		target, err := repo.FindByID(ctx, id)
		if err != nil {
			return mapRepoErr(err)
		}

		if newStatus == booking.StatusConfirmed {
			all, err := repo.ListAll(ctx)
			if err != nil {
				return errs.Mark(err, ErrPersistenceFailed)
			}
			if booking.ConfirmedElsewhere(all, id, target.Date().String(), target.Slot()) {
				return ErrSlotAlreadyConfirmed
			}
		}

		updated, err = repo.UpdateStatus(ctx, id, newStatus)
		if err != nil {
			return mapRepoErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("booking status changed",
		slog.String("booking_id", id),
		slog.String("status", newStatus.String()))

	uc.publisher.Publish(ctx, shared.BookingEvent{
		Type:      shared.EventBookingStatusChanged,
		BookingID: id,
		Booking:   updated,
	})

	return queries.NewBookingView(updated, uc.services.Locale), nil
}

func (uc *bookingCommandsImpl) Delete(ctx context.Context, id string) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return mapRepoErr(tx.Bookings().Remove(ctx, id))
	})
	if err != nil {
		return err
	}

	uc.logger.Info("booking deleted", slog.String("booking_id", id))

	uc.publisher.Publish(ctx, shared.BookingEvent{
		Type:      shared.EventBookingDeleted,
		BookingID: id,
	})
	return nil
}

func (uc *bookingCommandsImpl) SendTestNotification(ctx context.Context) notification.Outcome {
	return uc.tester.SendTest(ctx)
}

func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return ErrBookingNotFound
	default:
		return errs.Mark(err, ErrPersistenceFailed)
	}
}
