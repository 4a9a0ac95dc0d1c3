package core_fx

import (
	"go.uber.org/fx"

	"mirrormirror/internal/infra"
	"mirrormirror/internal/services"
)

var Module = fx.Provide(
	infra.LoadConfig,
	infra.NewLogger,
	services.NewAnalyticsService,
)
