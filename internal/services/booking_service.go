package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyager/internal/events"
	"voyager/internal/metrics"
	dbm "voyager/internal/models/db_models"
	"voyager/internal/models/itinerary"
	"voyager/internal/models/request_models"
	"voyager/internal/models/response_models"
	"voyager/internal/repositories"
	"voyager/pkg/utils"
)

type BookingServiceInterface interface {
	Finalize(ctx context.Context, userID uuid.UUID, req request_models.FinalizeBookingRequest) (*response_models.FinalizeBookingResponse, error)
	GetBooking(ctx context.Context, userID, id uuid.UUID) (*response_models.BookingResponse, error)
	ListBookings(ctx context.Context, userID uuid.UUID) ([]response_models.BookingResponse, error)
	RenderBookingPDF(ctx context.Context, userID, id uuid.UUID) ([]byte, error)
}

type BookingService struct {
	bookings  repositories.BookingRepository
	plans     repositories.SavedPlanRepository
	documents TripDocumentGenerator
	publisher events.Publisher
	log       *zap.Logger
}

func NewBookingService(
	bookings repositories.BookingRepository,
	plans repositories.SavedPlanRepository,
	documents TripDocumentGenerator,
	publisher events.Publisher,
	log *zap.Logger,
) BookingServiceInterface {
	return &BookingService{
		bookings:  bookings,
		plans:     plans,
		documents: documents,
		publisher: publisher,
		log:       log,
	}
}

// resolveEndpoints prefers the caller's values, then the option's flight legs.
func resolveEndpoints(option itinerary.Option, origin, destination string) (string, string) {
	legOrigin, legDestination := option.Endpoints()
	return firstNonEmpty(strings.TrimSpace(origin), legOrigin, "Origin"),
		firstNonEmpty(strings.TrimSpace(destination), legDestination, "Destination")
}

// Finalize writes the trip document and the booking that references it. Nothing is
// stored when document generation fails, so the caller can retry with the same quote.
func (b *BookingService) Finalize(ctx context.Context, userID uuid.UUID, req request_models.FinalizeBookingRequest) (*response_models.FinalizeBookingResponse, error) {
	if err := itinerary.ValidateOption(&req.Option); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	if req.SavedPlanID != nil {
		plan, err := b.plans.FindForUser(ctx, userID, *req.SavedPlanID)
		if err != nil {
			metrics.BookingFailures.Inc()
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if plan == nil {
			return nil, utils.ErrSavedPlanNotFound
		}
	}

	origin, destination := resolveEndpoints(req.Option, req.Origin, req.Destination)

	content, err := b.documents.TripDocument(ctx, TripDocumentInput{
		Option:      req.Option,
		Quote:       req.Quote,
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		metrics.BookingFailures.Inc()
		return nil, fmt.Errorf("%w: %v", utils.ErrDocumentGeneration, err)
	}
	if strings.TrimSpace(content) == "" {
		metrics.BookingFailures.Inc()
		return nil, fmt.Errorf("%w: document content is empty", utils.ErrDocumentGeneration)
	}

	doc := &dbm.TripDocument{UserID: userID, Content: content}
	booking := &dbm.Booking{UserID: userID, SavedPlanID: req.SavedPlanID}
	if err := b.bookings.CreateWithDocument(ctx, doc, booking); err != nil {
		metrics.BookingFailures.Inc()
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	metrics.BookingsFinalized.Inc()

	event := events.BookingCreatedEvent{
		BookingID:      booking.ID.String(),
		UserID:         userID.String(),
		TripDocumentID: doc.ID.String(),
		Origin:         origin,
		Destination:    destination,
		Total:          req.Quote.Total,
		CreatedAt:      time.Now().UTC(),
	}
	if req.SavedPlanID != nil {
		event.SavedPlanID = req.SavedPlanID.String()
	}
	if err := b.publisher.Publish(ctx, events.BookingCreated, event); err != nil {
		metrics.EventPublishErrors.Inc()
		b.log.Warn("publish booking.created", zap.String("booking_id", event.BookingID), zap.Error(err))
	}

	return &response_models.FinalizeBookingResponse{
		BookingID:      booking.ID.String(),
		TripDocumentID: doc.ID.String(),
	}, nil
}

func (b *BookingService) GetBooking(ctx context.Context, userID, id uuid.UUID) (*response_models.BookingResponse, error) {
	booking, err := b.bookings.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if booking == nil || booking.TripDocument == nil {
		return nil, utils.ErrBookingNotFound
	}

	resp := toBookingResponse(booking)
	resp.Content = booking.TripDocument.Content
	return &resp, nil
}

func (b *BookingService) ListBookings(ctx context.Context, userID uuid.UUID) ([]response_models.BookingResponse, error) {
	rows, err := b.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := make([]response_models.BookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toBookingResponse(&rows[i]))
	}
	return out, nil
}

func (b *BookingService) RenderBookingPDF(ctx context.Context, userID, id uuid.UUID) ([]byte, error) {
	booking, err := b.GetBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return RenderTripDocumentPDF(booking.Content)
}

func toBookingResponse(b *dbm.Booking) response_models.BookingResponse {
	resp := response_models.BookingResponse{
		ID:             b.ID.String(),
		TripDocumentID: b.TripDocumentID.String(),
		CreatedAt:      b.CreatedAt,
	}
	if b.SavedPlanID != nil {
		id := b.SavedPlanID.String()
		resp.SavedPlanID = &id
	}
	return resp
}
