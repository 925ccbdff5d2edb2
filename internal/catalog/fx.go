package catalog

import (
	"github.com/facturio/facturio/internal/catalog/repository"
	"github.com/facturio/facturio/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
