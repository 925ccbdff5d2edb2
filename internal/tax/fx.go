package tax

import (
	"github.com/facturio/facturio/internal/tax/repository"
	"github.com/facturio/facturio/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
