package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mirrormirror/internal/infra"
	"mirrormirror/internal/models/db_models"
	"mirrormirror/internal/models/request_models"
	"mirrormirror/internal/models/response_models"
	"mirrormirror/internal/services"
	"mirrormirror/pkg/utils"
)

type AdminController struct {
	resultsService services.ResultsServiceInterface
	quizService    services.QuizServiceInterface
	cfg            *infra.Config
}

func NewAdminController(
	resultsService services.ResultsServiceInterface,
	quizService services.QuizServiceInterface,
	cfg *infra.Config,
) *AdminController {
	return &AdminController{
		resultsService: resultsService,
		quizService:    quizService,
		cfg:            cfg,
	}
}

// authorized checks the shared-secret token. On mismatch nothing is exported
// and nothing about the attempt is recorded.
func (a *AdminController) authorized(c *gin.Context) bool {
	token := c.Query("token")
	if token == "" || !utils.CompareAdminToken(token, a.cfg.AdminToken, a.cfg.AdminTokenHash) {
		utils.RespondError(c, http.StatusForbidden, "Unauthorized")
		return false
	}
	return true
}

// DownloadResults godoc
// @Summary Bulk export of all stored fortune records
// @Tags Admin
// @Produce json
// @Param token query string true "Admin token"
// @Success 200 {object} response_models.ResultsExportResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/download_results [get]
func (a *AdminController) DownloadResults(c *gin.Context) {
	if !a.authorized(c) {
		return
	}

	records, err := a.resultsService.Export(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response_models.ResultsExportResponse{Results: records})
}

// AddQuestion godoc
// @Summary Append a question to the bank
// @Tags Admin
// @Accept json
// @Produce json
// @Param token query string true "Admin token"
// @Param request body request_models.AddQuestionRequest true "Question"
// @Success 200 {object} response_models.AddQuestionResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/add_question [post]
func (a *AdminController) AddQuestion(c *gin.Context) {
	if !a.authorized(c) {
		return
	}

	var req request_models.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	added, err := a.quizService.AddQuestion(db_models.Question{
		ID:       req.ID,
		Category: req.Category,
		Text:     req.Text,
		Choices:  req.Choices,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response_models.AddQuestionResponse{Added: added})
}

// ReloadQuestions godoc
// @Summary Reload the question bank from disk
// @Tags Admin
// @Produce json
// @Param token query string true "Admin token"
// @Success 200 {object} response_models.ReloadQuestionsResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/reload_questions [get]
func (a *AdminController) ReloadQuestions(c *gin.Context) {
	if !a.authorized(c) {
		return
	}

	count, err := a.quizService.ReloadQuestions()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response_models.ReloadQuestionsResponse{Count: count})
}
