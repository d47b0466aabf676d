package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyager/internal/models/request_models"
	"voyager/internal/services"
	"voyager/pkg/utils"
)

type GenerationController struct {
	generationService services.GenerationServiceInterface
}

func NewGenerationController(generationService services.GenerationServiceInterface) *GenerationController {
	return &GenerationController{
		generationService: generationService,
	}
}

// SaveDraft godoc
// @Summary Save the trip form draft
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body request_models.SaveDraftRequest true "Current form values"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /generation/draft [put]
func (g *GenerationController) SaveDraft(c *gin.Context) {
	var req request_models.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := g.generationService.SaveDraft(c.Request.Context(), sessionKey(c), req.Trip); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Draft saved")
}

// Mount godoc
// @Summary Restore the trip form on page load
// @Description Reports an in-flight generation or merges the saved draft into untouched fields
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body request_models.MountRequest true "Form as currently shown"
// @Success 200 {object} utils.APIResponse{data=services.MountResult}
// @Security BearerAuth
// @Router /generation/mount [post]
func (g *GenerationController) Mount(c *gin.Context) {
	var req request_models.MountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := g.generationService.Mount(c.Request.Context(), sessionKey(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Form state restored")
}

// Submit godoc
// @Summary Generate itinerary options
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body request_models.SubmitTripRequest true "Trip form"
// @Success 200 {object} utils.APIResponse{data=services.GenerationResult}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse{data=services.GenerationView}
// @Security BearerAuth
// @Router /generation/submit [post]
func (g *GenerationController) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req request_models.SubmitTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session := sessionKey(c)
	result, err := g.generationService.Submit(c.Request.Context(), userID, session, req.Trip)
	if err != nil {
		g.respondFailure(c, session, err)
		return
	}

	utils.RespondSuccess(c, result, generationMessage(result))
}

// Retry godoc
// @Summary Retry the last failed generation
// @Tags Generation
// @Produce json
// @Success 200 {object} utils.APIResponse{data=services.GenerationResult}
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse{data=services.GenerationView}
// @Security BearerAuth
// @Router /generation/retry [post]
func (g *GenerationController) Retry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	session := sessionKey(c)
	result, err := g.generationService.Retry(c.Request.Context(), userID, session)
	if err != nil {
		g.respondFailure(c, session, err)
		return
	}

	utils.RespondSuccess(c, result, generationMessage(result))
}

// Status godoc
// @Summary Current generation view
// @Tags Generation
// @Produce json
// @Success 200 {object} utils.APIResponse{data=services.GenerationView}
// @Security BearerAuth
// @Router /generation/status [get]
func (g *GenerationController) Status(c *gin.Context) {
	utils.RespondSuccess(c, g.generationService.Status(sessionKey(c)), "")
}

// Teardown godoc
// @Summary Leave the trip form
// @Description Results of generations started before this call are no longer applied
// @Tags Generation
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /generation/session [delete]
func (g *GenerationController) Teardown(c *gin.Context) {
	generation := g.generationService.Teardown(sessionKey(c))
	utils.RespondSuccess(c, gin.H{"generation": generation}, "Session reset")
}

// respondFailure attaches the session view so the client can render the retry state.
func (g *GenerationController) respondFailure(c *gin.Context, session string, err error) {
	if errors.Is(err, utils.ErrInvalidInput) {
		utils.HandleServiceError(c, err)
		return
	}
	code, message := utils.StatusForError(err)
	utils.RespondErrorWithData(c, code, message, g.generationService.Status(session))
}

func generationMessage(result *services.GenerationResult) string {
	if result.Outcome == services.StateEmpty {
		return "No itinerary options matched. Try adjusting your dates or interests."
	}
	return "Itinerary generated successfully"
}
