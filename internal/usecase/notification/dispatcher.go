package notification

import (
	"context"
	"sync"

	"venue-booking/internal/domain/booking"
)

// BookingNotifier is what the dispatcher runs in the background.
type BookingNotifier interface {
	Notify(ctx context.Context, b *booking.Booking) Outcome
}

// Dispatcher runs notifications in tracked goroutines detached from the
// caller's cancellation. Only the notifier's own timeout bounds them.
type Dispatcher struct {
	notifier BookingNotifier
	wg       sync.WaitGroup
}

func NewDispatcher(notifier BookingNotifier) *Dispatcher {
	return &Dispatcher{notifier: notifier}
}

// Dispatch starts delivery and returns a channel that yields exactly one Outcome.
// Callers may ignore the channel.
func (d *Dispatcher) Dispatch(ctx context.Context, b *booking.Booking) <-chan Outcome {
	out := make(chan Outcome, 1)
	detached := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(out)
		out <- d.notifier.Notify(detached, b)
	}()

	return out
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
