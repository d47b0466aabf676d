package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyager/internal/models/request_models"
	"voyager/internal/services"
	"voyager/pkg/utils"
)

type ShareController struct {
	shareService services.ShareServiceInterface
}

func NewShareController(shareService services.ShareServiceInterface) *ShareController {
	return &ShareController{shareService: shareService}
}

// CreateShare godoc
// @Summary Share a trip with an invite code
// @Tags Shares
// @Accept json
// @Produce json
// @Param request body request_models.CreateSavedPlanRequest true "Trip to share"
// @Success 200 {object} utils.APIResponse{data=response_models.ShareResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shares [post]
func (s *ShareController) CreateShare(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req request_models.CreateSavedPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "origin, destination, and options (array) are required")
		return
	}

	share, err := s.shareService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, share, "Trip shared")
}

// JoinShare godoc
// @Summary Join a shared trip
// @Description Copies the shared trip into the caller's saved plans
// @Tags Shares
// @Accept json
// @Produce json
// @Param request body request_models.JoinTripRequest true "Invite code"
// @Success 200 {object} utils.APIResponse{data=response_models.JoinResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shares/join [post]
func (s *ShareController) JoinShare(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req request_models.JoinTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "invite_code is required")
		return
	}

	joined, err := s.shareService.Join(c.Request.Context(), userID, req.InviteCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, joined, "Joined trip")
}

// QRCode godoc
// @Summary QR code for an invite link
// @Tags Shares
// @Produce png
// @Param code path string true "Invite code"
// @Success 200 {file} binary
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /shares/{code}/qr [get]
func (s *ShareController) QRCode(c *gin.Context) {
	png, err := s.shareService.QRCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
