package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyager/internal/models/request_models"
	"voyager/internal/services"
	"voyager/pkg/utils"
)

type QuoteController struct {
	quoteService services.QuoteServiceInterface
}

func NewQuoteController(quoteService services.QuoteServiceInterface) *QuoteController {
	return &QuoteController{quoteService: quoteService}
}

// Quote godoc
// @Summary Price an itinerary option
// @Description Splits the option cost into flights, hotels and activities
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body request_models.QuoteRequest true "Option to price"
// @Success 200 {object} utils.APIResponse{data=itinerary.Quote}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /quotes [post]
func (q *QuoteController) Quote(c *gin.Context) {
	var req request_models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	quote, err := q.quoteService.Quote(c.Request.Context(), req.Option, req.NumPersons)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, quote, "Quote created")
}
