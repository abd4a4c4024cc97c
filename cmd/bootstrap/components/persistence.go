package components

import (
	"venue-booking/internal/infra/uow"
	"venue-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			uow.NewKVUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)
