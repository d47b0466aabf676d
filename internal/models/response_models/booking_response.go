package response_models

type FinalizeBookingResponse struct {
	BookingID      string `json:"booking_id"`
	TripDocumentID string `json:"trip_document_id"`
}

type BookingResponse struct {
	ID             string  `json:"id"`
	SavedPlanID    *string `json:"user_plan_id"`
	TripDocumentID string  `json:"trip_document_id"`
	Content        string  `json:"content,omitempty"`
	CreatedAt      int64   `json:"created_at"`
}
