package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "ADMIN"
	RoleSupervisor = "SUPERVISOR"
	RoleEmployee   = "EMPLOYEE"
)

type User struct {
	ID                 string    `gorm:"primaryKey;type:text" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone              string    `json:"phone,omitempty"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	Role               string    `gorm:"not null;default:EMPLOYEE" json:"role"`
	Active             bool      `gorm:"not null" json:"active"`
	EmploymentType     string    `json:"employmentType,omitempty"`
	HourlyRate         int       `gorm:"not null;default:0" json:"hourlyRate"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt          time.Time `gorm:"not null" json:"createdAt"`
}

func (user *User) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(user.ID) == "" {
		user.ID = uuid.NewString()
	}
	return nil
}

func IsKnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleEmployee:
		return true
	default:
		return false
	}
}
