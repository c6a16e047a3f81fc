package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ShiftPlanned   = "PLANNED"
	ShiftConfirmed = "CONFIRMED"
	ShiftDone      = "DONE"
)

const (
	MinutesPerDay = 24 * 60
	Monday        = 1
	Sunday        = 7
)

type Shift struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"not null;index:idx_shifts_user_day" json:"userId"`
	SiteID    string    `gorm:"not null;index" json:"siteId"`
	DayOfWeek int       `gorm:"not null;index:idx_shifts_user_day" json:"dayOfWeek"`
	StartMin  int       `gorm:"not null" json:"startMin"`
	EndMin    int       `gorm:"not null" json:"endMin"`
	Status    string    `gorm:"not null;default:PLANNED" json:"status"`
	Checklist string    `json:"checklist,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Site *Site `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}

func (shift *Shift) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(shift.ID) == "" {
		shift.ID = uuid.NewString()
	}
	return nil
}

func (shift Shift) DurationMin() int {
	return shift.EndMin - shift.StartMin
}

func IsKnownShiftStatus(status string) bool {
	switch status {
	case ShiftPlanned, ShiftConfirmed, ShiftDone:
		return true
	default:
		return false
	}
}
