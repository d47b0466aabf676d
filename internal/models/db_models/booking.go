package db_models

import "github.com/google/uuid"

type TripDocument struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;index"`
	Content string    `gorm:"type:text;not null"`
}

type Booking struct {
	BaseModel
	UserID         uuid.UUID  `gorm:"type:uuid;index"`
	SavedPlanID    *uuid.UUID `gorm:"type:uuid;index"`
	TripDocumentID uuid.UUID  `gorm:"type:uuid"`

	TripDocument *TripDocument `gorm:"foreignKey:TripDocumentID"`
	SavedPlan    *SavedPlan    `gorm:"foreignKey:SavedPlanID"`
}
