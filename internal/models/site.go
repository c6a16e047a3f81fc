package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Site struct {
	ID                 string    `gorm:"primaryKey;type:text" json:"id"`
	Name               string    `gorm:"uniqueIndex;not null" json:"name"`
	City               string    `json:"city,omitempty"`
	Frequency          string    `json:"frequency,omitempty"`
	DefaultDurationMin int       `gorm:"not null;default:0" json:"defaultDurationMin"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `gorm:"not null" json:"createdAt"`
}

func (site *Site) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(site.ID) == "" {
		site.ID = uuid.NewString()
	}
	return nil
}

// SiteAccess grants a supervisor management rights over one site.
type SiteAccess struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:uidx_site_access_user_site" json:"userId"`
	SiteID    string    `gorm:"not null;uniqueIndex:uidx_site_access_user_site" json:"siteId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Site *Site `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}

func (SiteAccess) TableName() string { return "site_access" }

func (access *SiteAccess) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(access.ID) == "" {
		access.ID = uuid.NewString()
	}
	return nil
}
