package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyager/internal/models/request_models"
	"voyager/internal/services"
	"voyager/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface) *BookingController {
	return &BookingController{bookingService: bookingService}
}

// Finalize godoc
// @Summary Finalize a booking
// @Description Generates the trip document and records the booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.FinalizeBookingRequest true "Option and quote"
// @Success 200 {object} utils.APIResponse{data=response_models.FinalizeBookingResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/finalize [post]
func (b *BookingController) Finalize(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req request_models.FinalizeBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	booking, err := b.bookingService.Finalize(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking confirmed")
}

// ListBookings godoc
// @Summary List bookings
// @Tags Bookings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.BookingResponse}
// @Security BearerAuth
// @Router /bookings [get]
func (b *BookingController) ListBookings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bookings, err := b.bookingService.ListBookings(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}

// GetBooking godoc
// @Summary Get a booking with its trip document
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} utils.APIResponse{data=response_models.BookingResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/{id} [get]
func (b *BookingController) GetBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := b.bookingService.GetBooking(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking fetched successfully")
}

// DownloadDocument godoc
// @Summary Download the trip document as PDF
// @Tags Bookings
// @Produce application/pdf
// @Param id path string true "Booking ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/{id}/document.pdf [get]
func (b *BookingController) DownloadDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	pdf, err := b.bookingService.RenderBookingPDF(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.TripDocumentFilename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
