package quiz_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"mirrormirror/internal/api/controllers"
	"mirrormirror/internal/infra"
	"mirrormirror/internal/repositories"
	"mirrormirror/internal/services"
)

var Module = fx.Provide(
	provideQuestionRepo, provideQuizService, provideQuizController,
)

func provideQuestionRepo(cfg *infra.Config, logger *zap.Logger) (repositories.QuestionRepository, error) {
	return repositories.NewQuestionRepository(cfg.QuestionFile, logger)
}

func provideQuizService(questionRepo repositories.QuestionRepository, logger *zap.Logger) services.QuizServiceInterface {
	return services.NewQuizService(questionRepo, logger)
}

func provideQuizController(quizService services.QuizServiceInterface) *controllers.QuizController {
	return controllers.NewQuizController(quizService)
}
