package db_models

import "github.com/lib/pq"

type Account struct {
	BaseModel
	Email        string `gorm:"unique"`
	PasswordHash string
	FirstName    string
	LastName     string
	AvatarURL    *string
	Preferences  pq.StringArray `gorm:"type:text[]"`
	Role         string         `gorm:"default:user"`

	SavedPlans []SavedPlan `gorm:"foreignKey:UserID"`
	Bookings   []Booking   `gorm:"foreignKey:UserID"`
}

func (a *Account) FullName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.LastName != "":
		return a.LastName
	case a.Email != "":
		return a.Email
	}
	return "User"
}
