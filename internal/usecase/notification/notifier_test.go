//go:build unit

package notification_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/notification"
	"venue-booking/tests/common/builder"
	notificationmock "venue-booking/tests/mock/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNotifier_Notify(t *testing.T) {
	b := builder.NewBookingBuilder().BuildStored()

	t.Run("delivered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := notificationmock.NewMockSender(ctrl)
		sender.EXPECT().
			Send(gomock.Any(), notification.FormatBookingMessage(b, booking.LocaleIT), "+393331234567").
			Return(nil)

		n := notification.NewNotifier(sender, notification.Config{Destination: "+393331234567"}, discard)
		out := n.Notify(context.Background(), b)

		assert.True(t, out.Delivered())
		assert.NoError(t, out.Err)
	})

	t.Run("sender error becomes a failed outcome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := notificationmock.NewMockSender(ctrl)
		boom := errors.New("bridge down")
		sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)

		n := notification.NewNotifier(sender, notification.Config{Destination: "x"}, discard)
		out := n.Notify(context.Background(), b)

		assert.Equal(t, notification.StatusFailed, out.Status)
		assert.ErrorIs(t, out.Err, boom)
	})

	t.Run("timeout bounds the sender", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := notificationmock.NewMockSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ string) error {
				<-ctx.Done()
				return ctx.Err()
			})

		n := notification.NewNotifier(sender, notification.Config{Destination: "x", Timeout: 20 * time.Millisecond}, discard)
		start := time.Now()
		out := n.Notify(context.Background(), b)

		assert.False(t, out.Delivered())
		assert.ErrorIs(t, out.Err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("panicking sender is contained", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := notificationmock.NewMockSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, string) error { panic("nil map") })

		n := notification.NewNotifier(sender, notification.Config{Destination: "x"}, discard)
		out := n.Notify(context.Background(), b)

		assert.False(t, out.Delivered())
		assert.True(t, errs.Is(out.Err, notification.ErrSenderPanicked))
	})

	t.Run("missing destination never calls the sender", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := notificationmock.NewMockSender(ctrl)

		n := notification.NewNotifier(sender, notification.Config{}, discard)
		out := n.Notify(context.Background(), b)

		assert.False(t, out.Delivered())
		assert.True(t, errs.Is(out.Err, notification.ErrNoDestination))
	})
}

func TestNotifier_SendTest(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := notificationmock.NewMockSender(ctrl)
	sender.EXPECT().Send(gomock.Any(), "Test message from the booking system.", "42").Return(nil)

	n := notification.NewNotifier(sender, notification.Config{Destination: "42", Locale: booking.LocaleEN}, discard)
	require.True(t, n.SendTest(context.Background()).Delivered())
}
