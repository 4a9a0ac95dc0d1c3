package astrology_fx

import (
	"go.uber.org/fx"

	"mirrormirror/internal/api/controllers"
	"mirrormirror/internal/services"
)

var Module = fx.Provide(
	services.NewAstrologyService,
	controllers.NewAstrologyController,
)
