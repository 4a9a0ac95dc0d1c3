package results_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"mirrormirror/internal/api/controllers"
	"mirrormirror/internal/infra"
	"mirrormirror/internal/models/db_models"
	"mirrormirror/internal/repositories"
	"mirrormirror/internal/services"
)

var Module = fx.Provide(
	provideResultsRepository, services.NewResultsService, controllers.NewAdminController,
)

func provideResultsRepository(cfg *infra.Config, logger *zap.Logger) (repositories.ResultsRepository, error) {
	if cfg.ResultsBackend == "postgres" {
		db := infra.InitPostgresql(cfg)
		if err := db.AutoMigrate(&db_models.FortuneRecord{}); err != nil {
			return nil, err
		}
		logger.Info("results store: postgres")
		return repositories.NewGormResultsRepository(db), nil
	}
	logger.Info("results store: flat file", zap.String("path", cfg.ResultsFile))
	return repositories.NewFileResultsRepository(cfg.ResultsFile), nil
}
