package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrEmptyPicks             = errors.New("pick at least one place before planning")
	ErrGenerationInProgress   = errors.New("an itinerary generation is already in progress")
	ErrNothingToRetry         = errors.New("no failed generation to retry")
	ErrItineraryService       = errors.New("itinerary service error")
	ErrMalformedItinerary     = errors.New("malformed itinerary response")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI")
	ErrDocumentGeneration     = errors.New("trip document generation failed")
	ErrSavedPlanNotFound      = errors.New("saved plan not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrInviteCodeNotFound     = errors.New("invalid or expired invite code")
	ErrInviteCodeExhausted    = errors.New("could not generate unique invite code")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrDatabaseError          = errors.New("database error")
)
