package currency

import (
	"github.com/facturio/facturio/internal/currency/repository"
	"github.com/facturio/facturio/internal/currency/service"
	"go.uber.org/fx"
)

var Module = fx.Module("currency.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
