package fortune_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"mirrormirror/internal/api/controllers"
	"mirrormirror/internal/infra"
	"mirrormirror/internal/services"
)

var Module = fx.Provide(
	provideOracle, provideFortuneService, controllers.NewFortuneController,
)

func provideOracle(cfg *infra.Config) services.OracleClient {
	return services.NewOpenAIOracle(cfg.OpenAIKey)
}

func provideFortuneService(
	astro services.AstrologyServiceInterface,
	oracle services.OracleClient,
	cfg *infra.Config,
	logger *zap.Logger,
) services.FortuneServiceInterface {
	return services.NewFortuneService(astro, oracle, cfg.ForceRuleBased, logger,
		services.WithVariability())
}
