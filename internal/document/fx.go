package document

import (
	"github.com/facturio/facturio/internal/document/repository"
	"github.com/facturio/facturio/internal/document/service"
	"go.uber.org/fx"
)

var Module = fx.Module("document.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
