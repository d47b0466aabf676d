package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyager/internal/models/request_models"
	"voyager/internal/services"
	"voyager/pkg/utils"
)

type PlanController struct {
	planService services.SavedPlanServiceInterface
}

func NewPlanController(planService services.SavedPlanServiceInterface) *PlanController {
	return &PlanController{planService: planService}
}

// CreatePlan godoc
// @Summary Save generated itinerary options
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.CreateSavedPlanRequest true "Plan"
// @Success 200 {object} utils.APIResponse{data=response_models.SavedPlanResponse}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /plans [post]
func (p *PlanController) CreatePlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req request_models.CreateSavedPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "origin, destination, and options (array) are required")
		return
	}

	plan, err := p.planService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan saved")
}

// ListPlans godoc
// @Summary List saved plans, newest first
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.SavedPlanResponse}
// @Security BearerAuth
// @Router /plans [get]
func (p *PlanController) ListPlans(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plans, err := p.planService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// GetPlan godoc
// @Summary Get one saved plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=response_models.SavedPlanResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /plans/{id} [get]
func (p *PlanController) GetPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	plan, err := p.planService.Get(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}
