package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyager/internal/models/request_models"
	"voyager/internal/services"
	"voyager/pkg/utils"
)

type PickController struct {
	pickService services.PickServiceInterface
}

func NewPickController(pickService services.PickServiceInterface) *PickController {
	return &PickController{pickService: pickService}
}

// ListPicks godoc
// @Summary List picked places
// @Tags Picks
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]services.Pick}
// @Security BearerAuth
// @Router /picks [get]
func (p *PickController) ListPicks(c *gin.Context) {
	utils.RespondSuccess(c, p.pickService.ListPicks(sessionKey(c)), "")
}

// AddPick godoc
// @Summary Add a place to the pick set
// @Tags Picks
// @Accept json
// @Produce json
// @Param request body request_models.AddPickRequest true "Pick"
// @Success 200 {object} utils.APIResponse{data=[]services.Pick}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /picks [post]
func (p *PickController) AddPick(c *gin.Context) {
	var req request_models.AddPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	picks, err := p.pickService.AddPick(sessionKey(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, picks, "Pick added")
}

// RemovePick godoc
// @Summary Remove a place from the pick set
// @Tags Picks
// @Accept json
// @Produce json
// @Param request body request_models.RemovePickRequest true "Pick"
// @Success 200 {object} utils.APIResponse{data=[]services.Pick}
// @Security BearerAuth
// @Router /picks [delete]
func (p *PickController) RemovePick(c *gin.Context) {
	var req request_models.RemovePickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	utils.RespondSuccess(c, p.pickService.RemovePick(sessionKey(c), req), "Pick removed")
}

// SubmitPicks godoc
// @Summary Plan an itinerary around the picked places
// @Tags Picks
// @Accept json
// @Produce json
// @Param request body request_models.SubmitPicksRequest true "Trip meta"
// @Success 200 {object} utils.APIResponse{data=itinerary.PicksResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /picks/submit [post]
func (p *PickController) SubmitPicks(c *gin.Context) {
	var req request_models.SubmitPicksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := p.pickService.SubmitPicks(c.Request.Context(), sessionKey(c), req.Trip)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Itinerary planned from your picks")
}
