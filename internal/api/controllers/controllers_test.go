package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voyager/internal/models/itinerary"
	"voyager/internal/models/request_models"
	"voyager/internal/models/response_models"
	"voyager/internal/services"
	"voyager/pkg/utils"
)

func init() { gin.SetMode(gin.TestMode) }

type stubGeneration struct {
	services.GenerationServiceInterface
	submitErr error
	result    *services.GenerationResult
	session   string
}

func (s *stubGeneration) Submit(_ context.Context, _ uuid.UUID, session string, _ itinerary.TripRequest) (*services.GenerationResult, error) {
	s.session = session
	return s.result, s.submitErr
}

func (s *stubGeneration) Status(string) services.GenerationView {
	if s.submitErr != nil {
		return services.GenerationView{
			State: services.StateFailed,
			Error: &services.GenerationFailure{Message: s.submitErr.Error(), Retryable: true},
		}
	}
	return services.GenerationView{State: services.StateSucceeded, Result: s.result}
}

type stubBookings struct {
	services.BookingServiceInterface
	pdf []byte
	err error
}

func (s *stubBookings) RenderBookingPDF(context.Context, uuid.UUID, uuid.UUID) ([]byte, error) {
	return s.pdf, s.err
}

func (s *stubBookings) Finalize(context.Context, uuid.UUID, request_models.FinalizeBookingRequest) (*response_models.FinalizeBookingResponse, error) {
	return nil, s.err
}

// withUser mimics the JWT middleware.
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
			c.Set("session_key", userID+":tab-1")
		}
		c.Next()
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

func submitBody() *bytes.Reader {
	body, _ := json.Marshal(request_models.SubmitTripRequest{Trip: itinerary.TripRequest{Origin: "SFO", Destination: "Tokyo", NumPersons: 2}})
	return bytes.NewReader(body)
}

func TestGenerationSubmit(t *testing.T) {
	userID := uuid.NewString()

	tests := []struct {
		name       string
		user       string
		stub       *stubGeneration
		wantStatus int
		wantState  services.GenerationState
	}{
		{
			name:       "success",
			user:       userID,
			stub:       &stubGeneration{result: &services.GenerationResult{Outcome: services.StateSucceeded}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty",
			user:       userID,
			stub:       &stubGeneration{result: &services.GenerationResult{Outcome: services.StateEmpty, Options: []itinerary.Option{}}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "provider failure carries retry view",
			user:       userID,
			stub:       &stubGeneration{submitErr: utils.ErrItineraryService},
			wantStatus: http.StatusBadGateway,
			wantState:  services.StateFailed,
		},
		{
			name:       "in progress",
			user:       userID,
			stub:       &stubGeneration{submitErr: utils.ErrGenerationInProgress},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "invalid",
			user:       userID,
			stub:       &stubGeneration{submitErr: utils.ErrInvalidInput},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no user",
			stub:       &stubGeneration{},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/generation/submit", withUser(tt.user), NewGenerationController(tt.stub).Submit)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/generation/submit", submitBody())
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			env := decode(t, w)
			if env.Code != tt.wantStatus {
				t.Errorf("envelope code = %d", env.Code)
			}
			if tt.wantState != "" {
				var view services.GenerationView
				if err := json.Unmarshal(env.Data, &view); err != nil {
					t.Fatalf("decode view: %v", err)
				}
				if view.State != tt.wantState || view.Error == nil || !view.Error.Retryable {
					t.Errorf("view = %+v", view)
				}
			}
			if tt.wantStatus == http.StatusOK && tt.stub.session != tt.user+":tab-1" {
				t.Errorf("session = %q", tt.stub.session)
			}
		})
	}
}

func TestBookingDocumentDownload(t *testing.T) {
	userID := uuid.NewString()
	stub := &stubBookings{pdf: []byte("%PDF-1.3 test")}

	r := gin.New()
	r.GET("/bookings/:id/document.pdf", withUser(userID), NewBookingController(stub).DownloadDocument)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/"+uuid.NewString()+"/document.pdf", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, services.TripDocumentFilename) {
		t.Errorf("content disposition = %q", cd)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/not-a-uuid/document.pdf", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", w.Code)
	}

	stub.err = utils.ErrBookingNotFound
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/"+uuid.NewString()+"/document.pdf", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing booking status = %d", w.Code)
	}
}

func TestBookingFinalize_DocumentFailure(t *testing.T) {
	stub := &stubBookings{err: utils.ErrDocumentGeneration}

	r := gin.New()
	r.POST("/bookings/finalize", withUser(uuid.NewString()), NewBookingController(stub).Finalize)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings/finalize", strings.NewReader(`{"option":{"id":"opt_1"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if env := decode(t, w); env.Status != "error" {
		t.Errorf("envelope = %+v", env)
	}
}
