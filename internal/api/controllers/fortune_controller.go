package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mirrormirror/internal/infra"
	"mirrormirror/internal/models/request_models"
	"mirrormirror/internal/models/response_models"
	"mirrormirror/internal/services"
	"mirrormirror/pkg/middleware"
	"mirrormirror/pkg/utils"
)

type FortuneController struct {
	resultsService   services.ResultsServiceInterface
	analyticsService services.AnalyticsServiceInterface
	cfg              *infra.Config
	logger           *zap.Logger
}

func NewFortuneController(
	resultsService services.ResultsServiceInterface,
	analyticsService services.AnalyticsServiceInterface,
	cfg *infra.Config,
	logger *zap.Logger,
) *FortuneController {
	return &FortuneController{
		resultsService:   resultsService,
		analyticsService: analyticsService,
		cfg:              cfg,
		logger:           logger,
	}
}

// Submit godoc
// @Summary Submit a finished quiz
// @Description Generates a fortune for the submitted profile and appends it to the results store
// @Tags Fortune
// @Accept json
// @Produce json
// @Param request body request_models.SubmitRequest true "Quiz submission"
// @Success 200 {object} response_models.SubmitResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /submit [post]
func (f *FortuneController) Submit(c *gin.Context) {
	var req request_models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	outcome, err := f.resultsService.Submit(c.Request.Context(), req.Name, req.Birthdate, req.Quiz)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	session := middleware.SessionFromContext(c)
	session.Submissions++
	session.LastFortune = outcome.Record.Fortune
	if err := middleware.WriteSession(c, []byte(f.cfg.SecretKey), session); err != nil {
		f.logger.Warn("failed to write session cookie", zap.Error(err))
	}

	resp := response_models.SubmitResponse{
		Fortune: outcome.Record.Fortune,
		Profile: outcome.Record.Profile,
		Hints:   outcome.Hints,
		SessionMetrics: &response_models.SessionMetrics{
			SessionStart: session.SessionStart,
			Submissions:  session.Submissions,
		},
		Timestamp: utils.FormatTimestamp(time.Now()),
	}

	if outcome.PersistErr != nil {
		// Storage failed; the fortune still goes back for display.
		c.JSON(http.StatusInternalServerError, utils.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to store result",
			Data:    resp,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FortuneData godoc
// @Summary Fetch a fortune
// @Description Returns the latest stored fortune for a name, or a fresh sample fortune
// @Tags Fortune
// @Produce json
// @Param name query string false "Visitor name"
// @Success 200 {object} response_models.FortuneDataResponse
// @Router /fortune_data [get]
func (f *FortuneController) FortuneData(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		fortune, found, err := f.resultsService.LatestFortune(c.Request.Context(), name)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		if found {
			c.JSON(http.StatusOK, response_models.FortuneDataResponse{Fortune: fortune})
			return
		}
	}
	c.JSON(http.StatusOK, response_models.FortuneDataResponse{
		Fortune: f.resultsService.SampleFortune(c.Request.Context()),
	})
}

// History godoc
// @Summary Fortune history for a name
// @Tags Fortune
// @Produce json
// @Param username path string true "Visitor name"
// @Success 200 {object} response_models.HistoryResponse
// @Router /history/{username} [get]
func (f *FortuneController) History(c *gin.Context) {
	records, err := f.resultsService.History(c.Request.Context(), c.Param("username"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response_models.HistoryResponse{History: records})
}

// Analytics godoc
// @Summary In-process submission counters
// @Tags Fortune
// @Produce json
// @Success 200 {object} response_models.AnalyticsResponse
// @Router /analytics [get]
func (f *FortuneController) Analytics(c *gin.Context) {
	c.JSON(http.StatusOK, f.analyticsService.Snapshot())
}

// Reset godoc
// @Summary Clear the visitor session
// @Tags Fortune
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /reset [get]
func (f *FortuneController) Reset(c *gin.Context) {
	middleware.ClearSession(c)
	utils.RespondSuccess(c, nil, "Session cleared")
}
