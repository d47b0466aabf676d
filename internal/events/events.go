package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"voyager/internal/config"
)

// Publisher emits domain events. Callers treat publishing as best effort.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

// Event subjects
const (
	BookingCreated = "booking.created"
	PlanSaved      = "plan.saved"
	TripShared     = "trip.shared"
	TripJoined     = "trip.joined"
)

type BookingCreatedEvent struct {
	BookingID      string    `json:"booking_id"`
	UserID         string    `json:"user_id"`
	SavedPlanID    string    `json:"saved_plan_id,omitempty"`
	TripDocumentID string    `json:"trip_document_id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Total          int64     `json:"total"`
	CreatedAt      time.Time `json:"created_at"`
}

type PlanSavedEvent struct {
	SavedPlanID string    `json:"saved_plan_id"`
	UserID      string    `json:"user_id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Options     int       `json:"options"`
	CreatedAt   time.Time `json:"created_at"`
}

type TripSharedEvent struct {
	InviteCode string    `json:"invite_code"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type TripJoinedEvent struct {
	InviteCode  string    `json:"invite_code"`
	UserID      string    `json:"user_id"`
	SavedPlanID string    `json:"saved_plan_id"`
	JoinedAt    time.Time `json:"joined_at"`
}

// NewPublisher picks the broker from config: none, nats or kafka.
func NewPublisher(cfg config.Events, log *zap.Logger) (Publisher, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "none":
		return NewLogPublisher(log), nil
	case "nats":
		publisher, err := NewNATSPublisher(cfg.NATSURL, log)
		if err != nil {
			return nil, err
		}
		return publisher, nil
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log), nil
	default:
		return nil, fmt.Errorf("unsupported events driver: %s", cfg.Driver)
	}
}

// LogPublisher only logs events; used when no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	p.log.Debug("event", zap.String("subject", subject), zap.ByteString("data", payload))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
