package components

import (
	"fmt"
	"time"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/pkg/clock"
	"venue-booking/internal/pkg/config"
	"venue-booking/internal/usecase"
	"venue-booking/internal/usecase/commands"
	"venue-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	booking.NewUUIDv7Generator,
	NewBookingServices,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewCatalogQueries,
	),
)

// AuthModule is only needed by the HTTP server.
var AuthModule = fx.Module("usecase/auth",
	fx.Provide(
		func(cfg config.Config) commands.AdminAccount {
			return commands.AdminAccount{
				Username:     cfg.Admin.Username,
				PasswordHash: cfg.Admin.PasswordHash,
			}
		},
		commands.NewAuthCommands,
		usecase.NewTokenValidator,
	),
)

func NewBookingServices(cfg config.Config, clk clock.Clock, ids booking.IDGenerator) (*booking.Services, error) {
	loc, err := time.LoadLocation(cfg.Booking.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE: %w", err)
	}
	policy, err := booking.NewConflictPolicy(cfg.Booking.ConflictPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_CONFLICT_POLICY %q: %w", cfg.Booking.ConflictPolicy, err)
	}

	return &booking.Services{
		Clock:    clk,
		Location: loc,
		IDs:      ids,
		Policy:   policy,
		Locale:   booking.ParseLocale(cfg.Notify.Locale),
	}, nil
}
