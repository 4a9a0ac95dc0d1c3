package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mirrormirror/internal/models/response_models"
	"mirrormirror/internal/services"
	"mirrormirror/pkg/utils"
)

type QuizController struct {
	quizService services.QuizServiceInterface
}

func NewQuizController(quizService services.QuizServiceInterface) *QuizController {
	return &QuizController{quizService: quizService}
}

// GetQuizData godoc
// @Summary Get the question bank
// @Description Returns the full ordered question set for the quiz client
// @Tags Quiz
// @Produce json
// @Success 200 {object} response_models.QuizDataResponse
// @Router /quizdata [get]
func (q *QuizController) GetQuizData(c *gin.Context) {
	c.JSON(http.StatusOK, response_models.QuizDataResponse{
		Questions: q.quizService.Questions(),
	})
}

// GetFollowups godoc
// @Summary Derive follow-up prompts
// @Description Returns personalized reflection prompts for a partial or complete answer mapping
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Raw quiz answers"
// @Success 200 {object} response_models.FollowupResponse
// @Failure 400 {object} utils.APIResponse
// @Router /quizdata/followups [post]
func (q *QuizController) GetFollowups(c *gin.Context) {
	var body struct {
		Quiz map[string]interface{} `json:"quiz" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	n := 3
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10 {
			utils.RespondError(c, http.StatusBadRequest, "Invalid followup count")
			return
		}
		n = parsed
	}

	profile := services.MapProfile(body.Quiz)
	c.JSON(http.StatusOK, response_models.FollowupResponse{
		Questions: q.quizService.Followups(profile, n),
	})
}
