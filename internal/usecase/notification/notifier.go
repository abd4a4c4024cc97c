package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/pkg/errs"
)

var (
	ErrSenderPanicked = errs.New("notification sender panicked")
	ErrNoDestination  = errs.New("notification destination is not configured")
)

// Sender delivers one text message to one destination through a messaging bridge.
type Sender interface {
	Send(ctx context.Context, message, destination string) error
}

type Status string

const (
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

type Outcome struct {
	Status Status
	Err    error
}

func (o Outcome) Delivered() bool {
	return o.Status == StatusDelivered
}

const DefaultTimeout = 10 * time.Second

type Config struct {
	Destination string
	Locale      booking.Locale
	Timeout     time.Duration
}

// Notifier formats bookings and hands them to a Sender. It never returns an
// error: every failure collapses into a failed Outcome and a log line.
type Notifier struct {
	sender Sender
	cfg    Config
	logger *slog.Logger
}

func NewNotifier(sender Sender, cfg Config, logger *slog.Logger) *Notifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Locale == "" {
		cfg.Locale = booking.LocaleIT
	}
	return &Notifier{
		sender: sender,
		cfg:    cfg,
		logger: logger,
	}
}

func (n *Notifier) Notify(ctx context.Context, b *booking.Booking) Outcome {
	return n.deliver(ctx, FormatBookingMessage(b, n.cfg.Locale), slog.String("booking_id", b.ID()))
}

func (n *Notifier) SendTest(ctx context.Context) Outcome {
	return n.deliver(ctx, FormatTestMessage(n.cfg.Locale), slog.Bool("test", true))
}

func (n *Notifier) deliver(ctx context.Context, message string, attrs ...any) (out Outcome) {
	if n.cfg.Destination == "" {
		n.logger.Warn("notification skipped", append(attrs, slog.String("error", ErrNoDestination.Error()))...)
		return Outcome{Status: StatusFailed, Err: ErrNoDestination}
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err := errs.Mark(fmt.Errorf("%v", r), ErrSenderPanicked)
			n.logger.Error("notification failed", append(attrs, slog.String("error", err.Error()))...)
			out = Outcome{Status: StatusFailed, Err: err}
		}
	}()

	start := time.Now()
	if err := n.sender.Send(ctx, message, n.cfg.Destination); err != nil {
		n.logger.Warn("notification failed", append(attrs,
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))...)
		return Outcome{Status: StatusFailed, Err: err}
	}

	n.logger.Info("notification delivered", append(attrs, slog.Duration("elapsed", time.Since(start)))...)
	return Outcome{Status: StatusDelivered}
}
