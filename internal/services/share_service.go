package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"voyager/internal/events"
	"voyager/internal/metrics"
	dbm "voyager/internal/models/db_models"
	"voyager/internal/models/request_models"
	"voyager/internal/models/response_models"
	"voyager/internal/repositories"
	"voyager/pkg/utils"
)

const (
	inviteCodeLength   = 6
	inviteCodeAttempts = 5
	qrCodeSize         = 256
)

type ShareServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req request_models.CreateSavedPlanRequest) (*response_models.ShareResponse, error)
	Join(ctx context.Context, userID uuid.UUID, code string) (*response_models.JoinResponse, error)
	QRCode(ctx context.Context, code string) ([]byte, error)
}

type ShareService struct {
	trips     repositories.SharedTripRepository
	plans     repositories.SavedPlanRepository
	publisher events.Publisher
	log       *zap.Logger
	publicURL string
	newCode   func() (string, error)
}

func NewShareService(
	trips repositories.SharedTripRepository,
	plans repositories.SavedPlanRepository,
	publisher events.Publisher,
	log *zap.Logger,
	publicURL string,
) *ShareService {
	return &ShareService{
		trips:     trips,
		plans:     plans,
		publisher: publisher,
		log:       log,
		publicURL: strings.TrimRight(publicURL, "/"),
		newCode: func() (string, error) {
			return utils.GenerateInviteCode(inviteCodeLength)
		},
	}
}

// NormalizeInviteCode trims and upper-cases a code typed by a user.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *ShareService) joinURL(code string) string {
	return s.publicURL + "/join?code=" + url.QueryEscape(code)
}

// Create stores a shareable copy of the trip under a fresh invite code. A code that
// collides with an existing one is redrawn, up to five draws in total.
func (s *ShareService) Create(ctx context.Context, userID uuid.UUID, req request_models.CreateSavedPlanRequest) (*response_models.ShareResponse, error) {
	row, err := newSavedPlanRow(userID, req)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= inviteCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate invite code: %w", err)
		}

		trip := &dbm.SharedTrip{
			InviteCode:      code,
			CreatedByUserID: userID,
			Origin:          row.Origin,
			Destination:     row.Destination,
			StartDate:       row.StartDate,
			EndDate:         row.EndDate,
			Options:         row.Options,
		}
		err = s.trips.Create(ctx, trip)
		if err == nil {
			if err := s.publisher.Publish(ctx, events.TripShared, events.TripSharedEvent{
				InviteCode: code,
				UserID:     userID.String(),
				CreatedAt:  time.Now().UTC(),
			}); err != nil {
				metrics.EventPublishErrors.Inc()
				s.log.Warn("publish trip.shared", zap.Error(err))
			}
			return &response_models.ShareResponse{InviteCode: code, JoinURL: s.joinURL(code)}, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}

		metrics.InviteCodeCollisions.Inc()
		s.log.Debug("invite code collision", zap.Int("attempt", attempt))
	}

	return nil, utils.ErrInviteCodeExhausted
}

// Join copies a shared trip into the caller's saved plans.
func (s *ShareService) Join(ctx context.Context, userID uuid.UUID, code string) (*response_models.JoinResponse, error) {
	trip, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}

	plan := &dbm.SavedPlan{
		UserID:      userID,
		Origin:      trip.Origin,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Options:     trip.Options,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if err := s.publisher.Publish(ctx, events.TripJoined, events.TripJoinedEvent{
		InviteCode:  trip.InviteCode,
		UserID:      userID.String(),
		SavedPlanID: plan.ID.String(),
		JoinedAt:    time.Now().UTC(),
	}); err != nil {
		metrics.EventPublishErrors.Inc()
		s.log.Warn("publish trip.joined", zap.Error(err))
	}

	return &response_models.JoinResponse{Success: true, SavedPlanID: plan.ID.String()}, nil
}

// QRCode renders the join link of an existing invite code as a PNG.
func (s *ShareService) QRCode(ctx context.Context, code string) ([]byte, error) {
	trip, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(s.joinURL(trip.InviteCode), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

func (s *ShareService) find(ctx context.Context, code string) (*dbm.SharedTrip, error) {
	code = NormalizeInviteCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: invite code is required", utils.ErrInvalidInput)
	}

	trip, err := s.trips.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrInviteCodeNotFound
	}
	return trip, nil
}
