//go:build unit

package notify_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"venue-booking/internal/infra/notify"
	"venue-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestCallMeBotSender_Send(t *testing.T) {
	t.Run("query keeps parameter order and encodes spaces as %20", func(t *testing.T) {
		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte("Message queued"))
		}))
		defer srv.Close()

		sender := notify.NewCallMeBotSender(srv.Client(), srv.URL+"/whatsapp.php", "k3y", discard)
		err := sender.Send(context.Background(), "Nuova prenotazione: Mario & Co", "+393331234567")
		require.NoError(t, err)

		assert.Equal(t, "phone=%2B393331234567&text=Nuova%20prenotazione%3A%20Mario%20%26%20Co&apikey=k3y", gotQuery)
	})

	t.Run("non-2xx is a rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("APIKey is invalid"))
		}))
		defer srv.Close()

		sender := notify.NewCallMeBotSender(srv.Client(), srv.URL, "bad", discard)
		err := sender.Send(context.Background(), "hi", "+39333")
		require.Error(t, err)
		assert.True(t, errs.Is(err, notify.ErrBridgeRejected))
	})

	t.Run("slow bridge is cut off by the context", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		sender := notify.NewCallMeBotSender(srv.Client(), srv.URL, "k3y", discard)
		err := sender.Send(ctx, "hi", "+39333")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("unreachable bridge fails", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		sender := notify.NewCallMeBotSender(nil, url, "k3y", discard)
		assert.Error(t, sender.Send(context.Background(), "hi", "+39333"))
	})
}

func TestLogSender_Send(t *testing.T) {
	sender := notify.NewLogSender(discard)
	assert.NoError(t, sender.Send(context.Background(), "hi", "operator"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sender.Send(ctx, "hi", "operator"), context.Canceled)
}
