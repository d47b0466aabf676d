package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// RespondErrorWithData is used when the client needs state alongside the failure,
// e.g. a retryable generation error.
func RespondErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

// HandleServiceError maps service sentinel errors to HTTP responses. Validation and
// upstream messages are surfaced as-is; everything else is masked.
func HandleServiceError(c *gin.Context, err error) {
	code, message := StatusForError(err)
	if code >= http.StatusInternalServerError {
		zap.L().Error("service error",
			zap.String("trace_id", c.GetString("trace_id")),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	RespondError(c, code, message)
}

func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrEmptyPicks):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound, "Account not found"
	case errors.Is(err, ErrSavedPlanNotFound):
		return http.StatusNotFound, "Saved plan not found"
	case errors.Is(err, ErrBookingNotFound):
		return http.StatusNotFound, "Booking not found"
	case errors.Is(err, ErrInviteCodeNotFound):
		return http.StatusNotFound, ErrInviteCodeNotFound.Error()
	case errors.Is(err, ErrEmailAlreadyExists):
		return http.StatusConflict, "Email already exists"
	case errors.Is(err, ErrGenerationInProgress), errors.Is(err, ErrNothingToRetry):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ErrItineraryService),
		errors.Is(err, ErrMalformedItinerary),
		errors.Is(err, ErrUnexpectedBehaviorOfAI),
		errors.Is(err, ErrDocumentGeneration):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, ErrInviteCodeExhausted):
		return http.StatusServiceUnavailable, ErrInviteCodeExhausted.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
