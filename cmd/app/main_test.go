package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"voyager/internal/api/controllers"
)

func TestRegisterRoutes_RetryIsNotRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	auth := func(c *gin.Context) { c.Next() }
	limit := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }
	h := Handlers{
		Account:    controllers.NewAccountController(nil),
		Generation: controllers.NewGenerationController(nil),
		Picks:      controllers.NewPickController(nil),
		Quotes:     controllers.NewQuoteController(nil),
		Plans:      controllers.NewPlanController(nil),
		Shares:     controllers.NewShareController(nil),
		Bookings:   controllers.NewBookingController(nil),
	}
	RegisterRoutes(r, auth, limit, h)

	tests := []struct {
		path string
		want int
	}{
		{"/generation/submit", http.StatusTooManyRequests},
		{"/picks/submit", http.StatusTooManyRequests},
		// No user on the context, so the handler answers before touching its service.
		{"/generation/retry", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, tt.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("POST %s = %d, want %d", tt.path, w.Code, tt.want)
		}
	}
}
