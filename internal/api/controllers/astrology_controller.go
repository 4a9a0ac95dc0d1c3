package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mirrormirror/internal/models/response_models"
	"mirrormirror/internal/services"
)

type AstrologyController struct {
	astrologyService services.AstrologyServiceInterface
}

func NewAstrologyController(astrologyService services.AstrologyServiceInterface) *AstrologyController {
	return &AstrologyController{astrologyService: astrologyService}
}

// GetAstrology godoc
// @Summary Zodiac sign and element for a birthdate
// @Tags Astrology
// @Produce json
// @Param birthdate path string true "Birthdate (YYYY-MM-DD)"
// @Success 200 {object} response_models.AstrologyResponse
// @Router /astrology/{birthdate} [get]
func (a *AstrologyController) GetAstrology(c *gin.Context) {
	zodiac, element := a.astrologyService.Analyze(c.Param("birthdate"))
	c.JSON(http.StatusOK, response_models.AstrologyResponse{
		Zodiac:  zodiac,
		Element: element,
		Hint:    a.astrologyService.Hint(element),
	})
}
