//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/infra/kvstore"
	"venue-booking/internal/infra/uow"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/commands"
	"venue-booking/internal/usecase/notification"
	"venue-booking/internal/usecase/shared"
	"venue-booking/tests/common/builder"
	kvstoremock "venue-booking/tests/mock/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDispatcher struct {
	mu         sync.Mutex
	dispatched []string
	outcome    notification.Outcome
}

func (f *fakeDispatcher) Dispatch(_ context.Context, b *booking.Booking) <-chan notification.Outcome {
	f.mu.Lock()
	f.dispatched = append(f.dispatched, b.ID())
	f.mu.Unlock()

	ch := make(chan notification.Outcome, 1)
	ch <- f.outcome
	close(ch)
	return ch
}

type fakeTester struct{ outcome notification.Outcome }

func (f fakeTester) SendTest(context.Context) notification.Outcome { return f.outcome }

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e shared.BookingEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

type fixture struct {
	cmds       commands.BookingCommands
	uow        shared.UnitOfWork
	dispatcher *fakeDispatcher
	publisher  *recordingPublisher
}

func newFixture(t *testing.T, store kvstore.Store, policy booking.ConflictPolicy) *fixture {
	t.Helper()
	f := &fixture{
		uow:        uow.NewKVUoW(store, discard),
		dispatcher: &fakeDispatcher{outcome: notification.Outcome{Status: notification.StatusDelivered}},
		publisher:  &recordingPublisher{},
	}
	f.cmds = commands.NewBookingCommands(
		f.uow,
		builder.NewServicesWithPolicy(policy),
		f.dispatcher,
		fakeTester{outcome: notification.Outcome{Status: notification.StatusDelivered}},
		f.publisher,
		discard,
	)
	return f
}

func submitInput(b *builder.BookingBuilder) commands.SubmitInput {
	p := b.Params()
	return commands.SubmitInput{
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Date:      p.Date,
		Time:      p.Time,
		Guests:    p.Guests,
		EventType: p.EventType,
		Message:   p.Message,
	}
}

func (f *fixture) stored(t *testing.T) []*booking.Booking {
	t.Helper()
	all, err := f.uow.Bookings().ListAll(context.Background())
	require.NoError(t, err)
	return all
}

func TestBookingCommands_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a pending booking then notifies and publishes", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)

		res, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)

		assert.Equal(t, "bk-1", res.Booking.ID)
		assert.Equal(t, "pending", res.Booking.Status)
		assert.Equal(t, "Sera (18:00–22:00)", res.Booking.TimeLabel)
		assert.True(t, (<-res.Notification).Delivered())

		require.Len(t, f.stored(t), 1)
		assert.Equal(t, []string{"bk-1"}, f.dispatcher.dispatched)
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, shared.EventBookingCreated, f.publisher.events[0].Type)
	})

	t.Run("invalid input stores nothing", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)

		_, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder().WithPhone("12").WithDate("2020-01-01")))
		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrValidation))
		assert.ErrorIs(t, err, booking.ErrInvalidPhone)
		assert.ErrorIs(t, err, booking.ErrDateInPast)

		assert.Empty(t, f.stored(t))
		assert.Empty(t, f.dispatcher.dispatched)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("confirmed slot rejects without storing or notifying", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)
		first, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)
		_, err = f.cmds.ChangeStatus(ctx, first.Booking.ID, "confirmed")
		require.NoError(t, err)

		_, err = f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder().WithName("Luigi Verdi")))
		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrSlotUnavailable))

		assert.Len(t, f.stored(t), 1)
		assert.Equal(t, []string{"bk-1"}, f.dispatcher.dispatched)
	})

	t.Run("pending requests pile up under the confirmed policy", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)

		_, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)
		_, err = f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)

		assert.Len(t, f.stored(t), 2)
	})

	t.Run("pending request blocks under the active policy", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyActive)

		_, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)
		_, err = f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		assert.True(t, errs.Is(err, commands.ErrSlotUnavailable))

		_, err = f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder().WithTime("night")))
		assert.NoError(t, err, "night overlaps evening on the clock but is its own slot")
	})

	t.Run("concurrent submissions for one slot admit exactly one", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyActive)

		var wg sync.WaitGroup
		errsCh := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
				errsCh <- err
			}()
		}
		wg.Wait()
		close(errsCh)

		ok := 0
		for err := range errsCh {
			if err == nil {
				ok++
			} else {
				assert.True(t, errs.Is(err, commands.ErrSlotUnavailable))
			}
		}
		assert.Equal(t, 1, ok)
		assert.Len(t, f.stored(t), 1)
	})

	t.Run("failed notification keeps the booking", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)
		f.dispatcher.outcome = notification.Outcome{Status: notification.StatusFailed, Err: errors.New("bridge down")}

		res, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)
		assert.False(t, (<-res.Notification).Delivered())
		assert.Len(t, f.stored(t), 1)
	})

	t.Run("unreadable storage refuses to write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := kvstoremock.NewMockStore(ctrl)
		store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("io error"))
		f := newFixture(t, store, booking.PolicyConfirmedOnly)

		_, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrPersistenceFailed))
		assert.Empty(t, f.dispatcher.dispatched)
	})

	t.Run("write failure is a persistence failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := kvstoremock.NewMockStore(ctrl)
		// the conflict check and the append each reread the collection
		store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil).Times(2)
		store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))
		f := newFixture(t, store, booking.PolicyConfirmedOnly)

		_, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		assert.True(t, errs.Is(err, commands.ErrPersistenceFailed))
		assert.Empty(t, f.dispatcher.dispatched)
		assert.Empty(t, f.publisher.events)
	})
}

func TestBookingCommands_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("status changes and an event is published", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)
		res, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)

		view, err := f.cmds.ChangeStatus(ctx, res.Booking.ID, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", view.Status)
		assert.Equal(t, "Cancellata", view.StatusLabel)

		stored := f.stored(t)
		require.Len(t, stored, 1)
		assert.Equal(t, booking.StatusCancelled, stored[0].Status())
		assert.Equal(t, shared.EventBookingStatusChanged, f.publisher.events[len(f.publisher.events)-1].Type)
	})

	t.Run("same status again is accepted", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)
		res, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)

		_, err = f.cmds.ChangeStatus(ctx, res.Booking.ID, "pending")
		assert.NoError(t, err)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)
		_, err := f.cmds.ChangeStatus(ctx, "bk-1", "archived")
		assert.True(t, errs.Is(err, commands.ErrInvalidStatus))
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)
		_, err := f.cmds.ChangeStatus(ctx, "ghost", "confirmed")
		assert.True(t, errs.Is(err, commands.ErrBookingNotFound))
		assert.Empty(t, f.publisher.events)
	})

	t.Run("second confirmation on a slot is refused", func(t *testing.T) {
		f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)
		first, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)
		second, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
		require.NoError(t, err)

		_, err = f.cmds.ChangeStatus(ctx, first.Booking.ID, "confirmed")
		require.NoError(t, err)
		_, err = f.cmds.ChangeStatus(ctx, second.Booking.ID, "confirmed")
		assert.True(t, errs.Is(err, commands.ErrSlotAlreadyConfirmed))

		_, err = f.cmds.ChangeStatus(ctx, first.Booking.ID, "confirmed")
		assert.NoError(t, err, "re-confirming the holder is fine")
	})
}

func TestBookingCommands_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)
	first, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder()))
	require.NoError(t, err)
	second, err := f.cmds.Submit(ctx, submitInput(builder.NewBookingBuilder().WithTime("morning")))
	require.NoError(t, err)

	require.NoError(t, f.cmds.Delete(ctx, first.Booking.ID))

	stored := f.stored(t)
	require.Len(t, stored, 1)
	assert.Equal(t, second.Booking.ID, stored[0].ID())

	last := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, shared.EventBookingDeleted, last.Type)
	assert.Equal(t, first.Booking.ID, last.BookingID)
	assert.Nil(t, last.Booking)

	err = f.cmds.Delete(ctx, first.Booking.ID)
	assert.True(t, errs.Is(err, commands.ErrBookingNotFound))
}

func TestBookingCommands_SendTestNotification(t *testing.T) {
	f := newFixture(t, kvstore.NewMemory(), booking.PolicyConfirmedOnly)
	assert.True(t, f.cmds.SendTestNotification(context.Background()).Delivered())
}

type captureSender struct {
	mu       sync.Mutex
	messages []string
	to       []string
}

func (c *captureSender) Send(_ context.Context, message, destination string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
	c.to = append(c.to, destination)
	return nil
}

func (c *captureSender) sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func TestBookingCommands_SubmitThroughNotifier(t *testing.T) {
	ctx := context.Background()
	sender := &captureSender{}
	notifier := notification.NewNotifier(sender, notification.Config{Destination: "+393331112222", Locale: booking.LocaleIT}, discard)
	dispatcher := notification.NewDispatcher(notifier)
	u := uow.NewKVUoW(kvstore.NewMemory(), discard)
	cmds := commands.NewBookingCommands(u, builder.NewServicesWithPolicy(booking.PolicyConfirmedOnly),
		dispatcher, notifier, &recordingPublisher{}, discard)

	input := func() commands.SubmitInput {
		return submitInput(builder.NewBookingBuilder().
			WithName("Maria Rossi").
			WithEmail("maria@example.com").
			WithTime("afternoon").
			WithEventType("wedding").
			WithGuests("51-100"))
	}

	res, err := cmds.Submit(ctx, input())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Booking.ID)
	assert.Equal(t, "pending", res.Booking.Status)
	assert.False(t, res.Booking.CreatedAt.IsZero())

	out := <-res.Notification
	require.True(t, out.Delivered(), "notification failed: %v", out.Err)
	require.NoError(t, dispatcher.Wait(ctx))

	msgs := sender.sent()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Maria Rossi")
	assert.Contains(t, msgs[0], "Matrimonio")
	assert.Contains(t, msgs[0], "Pomeriggio (13:00–17:00)")
	assert.Equal(t, []string{"+393331112222"}, sender.to)

	_, err = cmds.ChangeStatus(ctx, res.Booking.ID, "confirmed")
	require.NoError(t, err)

	_, err = cmds.Submit(ctx, input())
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrSlotUnavailable))
	require.NoError(t, dispatcher.Wait(ctx))
	assert.Len(t, sender.sent(), 1)
}
