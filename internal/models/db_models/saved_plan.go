package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// SavedPlan keeps every option of one generation call. Rows are never updated.
type SavedPlan struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	Origin      string
	Destination string
	StartDate   *string        `gorm:"type:date"`
	EndDate     *string        `gorm:"type:date"`
	Interests   pq.StringArray `gorm:"type:text[]"`
	Options     datatypes.JSON `gorm:"type:jsonb;not null"`
}

type SharedTrip struct {
	BaseModel
	InviteCode      string    `gorm:"size:16;uniqueIndex"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`
	Origin          string
	Destination     string
	StartDate       *string        `gorm:"type:date"`
	EndDate         *string        `gorm:"type:date"`
	Options         datatypes.JSON `gorm:"type:jsonb;not null"`
}
