package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"mirrormirror/cmd/fx/astrology_fx"
	"mirrormirror/cmd/fx/core_fx"
	"mirrormirror/cmd/fx/fortune_fx"
	"mirrormirror/cmd/fx/quiz_fx"
	"mirrormirror/cmd/fx/results_fx"
	"mirrormirror/internal/api/controllers"
	"mirrormirror/internal/infra"
	"mirrormirror/pkg/middleware"
)

func main() {
	app := fx.New(
		core_fx.Module,
		quiz_fx.Module,
		fortune_fx.Module,
		results_fx.Module,
		astrology_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				addr := cfg.Host + ":" + cfg.Port
				logger.Info("starting HTTP server", zap.String("addr", addr))
				if err := engine.Run(addr); err != nil {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg *infra.Config,
	quizController *controllers.QuizController,
	fortuneController *controllers.FortuneController,
	adminController *controllers.AdminController,
	astrologyController *controllers.AstrologyController,
) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.SessionMiddleware([]byte(cfg.SecretKey)))

	RegisterRoutes(r, quizController, fortuneController, adminController, astrologyController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	quizController *controllers.QuizController,
	fortuneController *controllers.FortuneController,
	adminController *controllers.AdminController,
	astrologyController *controllers.AstrologyController) {

	r.GET("/quizdata", quizController.GetQuizData)
	r.POST("/quizdata/followups", quizController.GetFollowups)

	r.POST("/submit", fortuneController.Submit)
	r.GET("/fortune_data", fortuneController.FortuneData)
	r.GET("/history/:username", fortuneController.History)
	r.GET("/analytics", fortuneController.Analytics)
	r.GET("/reset", fortuneController.Reset)

	r.GET("/astrology/:birthdate", astrologyController.GetAstrology)

	adminGroup := r.Group("/admin")
	adminGroup.GET("/download_results", adminController.DownloadResults)
	adminGroup.POST("/add_question", adminController.AddQuestion)
	adminGroup.GET("/reload_questions", adminController.ReloadQuestions)
}
