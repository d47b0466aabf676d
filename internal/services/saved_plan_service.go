package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"voyager/internal/events"
	"voyager/internal/metrics"
	dbm "voyager/internal/models/db_models"
	"voyager/internal/models/itinerary"
	"voyager/internal/models/request_models"
	"voyager/internal/models/response_models"
	"voyager/internal/repositories"
	"voyager/pkg/utils"
)

type SavedPlanServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req request_models.CreateSavedPlanRequest) (*response_models.SavedPlanResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]response_models.SavedPlanResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*response_models.SavedPlanResponse, error)
}

type SavedPlanService struct {
	plans     repositories.SavedPlanRepository
	bookings  repositories.BookingRepository
	publisher events.Publisher
	log       *zap.Logger
}

func NewSavedPlanService(
	plans repositories.SavedPlanRepository,
	bookings repositories.BookingRepository,
	publisher events.Publisher,
	log *zap.Logger,
) SavedPlanServiceInterface {
	return &SavedPlanService{
		plans:     plans,
		bookings:  bookings,
		publisher: publisher,
		log:       log,
	}
}

// newSavedPlanRow trims and checks a plan payload; shared trips use the same rules.
func newSavedPlanRow(userID uuid.UUID, req request_models.CreateSavedPlanRequest) (*dbm.SavedPlan, error) {
	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" || len(req.Options) == 0 {
		return nil, fmt.Errorf("%w: origin, destination, and options (array) are required", utils.ErrInvalidInput)
	}

	options, err := json.Marshal(req.Options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	return &dbm.SavedPlan{
		UserID:      userID,
		Origin:      origin,
		Destination: destination,
		StartDate:   utils.OptionalDate(req.StartDate),
		EndDate:     utils.OptionalDate(req.EndDate),
		Interests:   req.Interests,
		Options:     datatypes.JSON(options),
	}, nil
}

func (s *SavedPlanService) Create(ctx context.Context, userID uuid.UUID, req request_models.CreateSavedPlanRequest) (*response_models.SavedPlanResponse, error) {
	row, err := newSavedPlanRow(userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.plans.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if err := s.publisher.Publish(ctx, events.PlanSaved, events.PlanSavedEvent{
		SavedPlanID: row.ID.String(),
		UserID:      userID.String(),
		Origin:      row.Origin,
		Destination: row.Destination,
		Options:     len(req.Options),
		CreatedAt:   time.Unix(row.CreatedAt, 0).UTC(),
	}); err != nil {
		metrics.EventPublishErrors.Inc()
		s.log.Warn("publish plan.saved", zap.Error(err))
	}

	return toSavedPlanResponse(row, false)
}

func (s *SavedPlanService) List(ctx context.Context, userID uuid.UUID) ([]response_models.SavedPlanResponse, error) {
	rows, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	booked, err := s.bookedPlans(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]response_models.SavedPlanResponse, 0, len(rows))
	for i := range rows {
		resp, err := toSavedPlanResponse(&rows[i], booked[rows[i].ID])
		if err != nil {
			s.log.Warn("skip unreadable saved plan", zap.String("saved_plan_id", rows[i].ID.String()), zap.Error(err))
			continue
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *SavedPlanService) Get(ctx context.Context, userID, id uuid.UUID) (*response_models.SavedPlanResponse, error) {
	row, err := s.plans.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if row == nil {
		return nil, utils.ErrSavedPlanNotFound
	}

	booked, err := s.bookedPlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSavedPlanResponse(row, booked[row.ID])
}

func (s *SavedPlanService) bookedPlans(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	booked := make(map[uuid.UUID]bool, len(bookings))
	for _, b := range bookings {
		if b.SavedPlanID != nil {
			booked[*b.SavedPlanID] = true
		}
	}
	return booked, nil
}

func toSavedPlanResponse(row *dbm.SavedPlan, booked bool) (*response_models.SavedPlanResponse, error) {
	var options []itinerary.Option
	if len(row.Options) > 0 {
		if err := json.Unmarshal(row.Options, &options); err != nil {
			return nil, fmt.Errorf("decode saved plan options: %w", err)
		}
	}
	return &response_models.SavedPlanResponse{
		ID:          row.ID.String(),
		Origin:      row.Origin,
		Destination: row.Destination,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Interests:   row.Interests,
		Options:     options,
		CreatedAt:   row.CreatedAt,
		Booked:      booked,
	}, nil
}
