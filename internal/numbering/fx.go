package numbering

import (
	"github.com/facturio/facturio/internal/numbering/repository"
	"github.com/facturio/facturio/internal/numbering/service"
	"go.uber.org/fx"
)

var Module = fx.Module("numbering.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
