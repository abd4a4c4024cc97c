package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"venue-booking/internal/infra/db"
	"venue-booking/internal/infra/kvstore"
	"venue-booking/internal/pkg/clock"
	"venue-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewKVStore,
	),
)

// NewKVStore opens the configured backend and applies migrations for the SQL ones.
func NewKVStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (kvstore.Store, error) {
	ctx := context.Background()

	switch cfg.Storage.Driver {
	case DriverMemory:
		logger.Warn("using in-memory booking storage, data is lost on exit")
		return kvstore.NewMemory(), nil

	case DriverSQLite:
		sqlDB, cleanup, err := db.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, sqlDB, goose.DialectSQLite3, logger); err != nil {
			cleanup()
			return nil, err
		}
		appendCleanup(lc, cleanup)
		logger.Info("booking storage ready", slog.String("driver", DriverSQLite), slog.String("path", cfg.Storage.SQLitePath))
		return kvstore.NewSQLStore(sqlDB, clk), nil

	case DriverPostgres:
		pool, cleanup, err := db.ConnectPostgres(ctx, cfg.Storage.DB)
		if err != nil {
			return nil, err
		}
		migrationDB := stdlib.OpenDBFromPool(pool)
		err = db.Migrate(ctx, migrationDB, goose.DialectPostgres, logger)
		_ = migrationDB.Close()
		if err != nil {
			cleanup()
			return nil, err
		}
		appendCleanup(lc, cleanup)
		logger.Info("booking storage ready", slog.String("driver", DriverPostgres), slog.String("host", cfg.Storage.DB.Host))
		return kvstore.NewPostgresStore(pool, clk), nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
}

func appendCleanup(lc fx.Lifecycle, cleanup func()) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})
}
