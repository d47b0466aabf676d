package request_models

import (
	"github.com/google/uuid"

	"voyager/internal/models/itinerary"
)

type SaveDraftRequest struct {
	Trip itinerary.TripRequest `json:"trip"`
}

// MountRequest carries the form as the client currently holds it. Touched lists
// the json names of fields the user already edited in this session.
type MountRequest struct {
	Current itinerary.TripRequest `json:"current"`
	Touched []string              `json:"touched"`
}

type SubmitTripRequest struct {
	Trip itinerary.TripRequest `json:"trip"`
}

type AddPickRequest struct {
	Label   string `json:"label"`
	MapLink string `json:"map_link"`
	Source  string `json:"source" binding:"omitempty,oneof=activity link"`
}

type RemovePickRequest struct {
	Label   string `json:"label"`
	MapLink string `json:"map_link"`
}

type SubmitPicksRequest struct {
	Trip itinerary.TripMeta `json:"trip"`
}

type QuoteRequest struct {
	Option     itinerary.Option `json:"option"`
	NumPersons int              `json:"num_persons" binding:"omitempty,min=1,max=20"`
}

type CreateSavedPlanRequest struct {
	Origin      string             `json:"origin" binding:"required"`
	Destination string             `json:"destination" binding:"required"`
	StartDate   string             `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string             `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Interests   []string           `json:"interests"`
	Options     []itinerary.Option `json:"options" binding:"required,min=1"`
}

type JoinTripRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

type FinalizeBookingRequest struct {
	Option      itinerary.Option `json:"option"`
	Quote       itinerary.Quote  `json:"quote"`
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	SavedPlanID *uuid.UUID       `json:"saved_plan_id"`
}
