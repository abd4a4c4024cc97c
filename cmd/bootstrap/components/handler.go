package components

import (
	"log/slog"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/handler"
	"venue-booking/internal/handler/api"
	"venue-booking/internal/handler/middleware"
	"venue-booking/internal/handler/ws"
	"venue-booking/internal/pkg/config"
	"venue-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewHub,
		func(h *ws.Hub) shared.EventPublisher { return h },
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) booking.Locale { return booking.ParseLocale(cfg.Notify.Locale) },
		func(hub *ws.Hub, cfg config.Config, logger *slog.Logger) *api.StreamHandler {
			return api.NewStreamHandler(hub, cfg.CORS.AllowOrigins, logger)
		},
		func(auth *api.AuthHandler, b *api.BookingHandler, admin *api.AdminBookingHandler, stream *api.StreamHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Booking: b, AdminBooking: admin, Stream: stream}
		},
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewAdminBookingHandler,
		middleware.NewAuthMiddleware,
		func() *gin.Engine { return gin.New() },
	),
	fx.Invoke(handler.NewRouter),
)

func NewHub(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *ws.Hub {
	hub := ws.NewHub(booking.ParseLocale(cfg.Notify.Locale), logger)
	lc.Append(fx.StopHook(hub.Close))
	return hub
}
