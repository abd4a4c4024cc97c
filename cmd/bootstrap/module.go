package bootstrap

import (
	"venue-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything a booking operation needs, without HTTP.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	StorageModule,
	NotifyModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

// Module is the full HTTP server.
var Module = fx.Options(
	CoreModule,
	JWTModule,
	components.AuthModule,
	components.HandlerModule,
	ServerModule,
)
