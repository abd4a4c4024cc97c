package bootstrap

import (
	"context"
	"log/slog"
	"net/http"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/infra/notify"
	"venue-booking/internal/pkg/config"
	"venue-booking/internal/usecase/commands"
	"venue-booking/internal/usecase/notification"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewSender,
		NewNotifier,
		fx.Annotate(
			NewDispatcher,
			fx.As(new(commands.NotificationDispatcher)),
		),
		fx.Annotate(
			func(n *notification.Notifier) *notification.Notifier { return n },
			fx.As(new(commands.TestNotifier)),
		),
	),
)

func NewSender(cfg config.Config, logger *slog.Logger) (notification.Sender, error) {
	n := cfg.Notify
	switch n.Channel {
	case "callmebot":
		client := &http.Client{Timeout: n.Timeout}
		return notify.NewCallMeBotSender(client, n.CallMeBot.BaseURL, n.CallMeBot.APIKey, logger), nil
	case "telegram":
		return notify.NewTelegramSender(n.Telegram.Token)
	case "email":
		return notify.NewEmailSender(notify.EmailConfig{
			Host:     n.SMTP.Host,
			Port:     n.SMTP.Port,
			Username: n.SMTP.Username,
			Password: n.SMTP.Password,
			From:     n.SMTP.From,
		}), nil
	default:
		return notify.NewLogSender(logger), nil
	}
}

func NewNotifier(cfg config.Config, sender notification.Sender, logger *slog.Logger) *notification.Notifier {
	return notification.NewNotifier(sender, notification.Config{
		Destination: cfg.Notify.Destination(),
		Locale:      booking.ParseLocale(cfg.Notify.Locale),
		Timeout:     cfg.Notify.Timeout,
	}, logger.With(slog.String("channel", cfg.Notify.Channel)))
}

// NewDispatcher drains in-flight notifications when the app stops.
func NewDispatcher(lc fx.Lifecycle, n *notification.Notifier, logger *slog.Logger) *notification.Dispatcher {
	d := notification.NewDispatcher(n)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := d.Wait(ctx); err != nil {
				logger.Warn("notifications still in flight at shutdown", slog.String("error", err.Error()))
			}
			return nil
		},
	})
	return d
}
