package response_models

import "voyager/internal/models/itinerary"

type SavedPlanResponse struct {
	ID          string             `json:"id"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	StartDate   *string            `json:"start_date,omitempty"`
	EndDate     *string            `json:"end_date,omitempty"`
	Interests   []string           `json:"interests,omitempty"`
	Options     []itinerary.Option `json:"options"`
	CreatedAt   int64              `json:"created_at"`
	Booked      bool               `json:"booked"`
}

type ShareResponse struct {
	InviteCode string `json:"invite_code"`
	JoinURL    string `json:"join_url"`
}

type JoinResponse struct {
	Success     bool   `json:"success"`
	SavedPlanID string `json:"saved_plan_id"`
}
