package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	Sites      *SiteRepository
	SiteAccess *SiteAccessRepository
	Shifts     *ShiftRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		Sites:      NewSiteRepository(database),
		SiteAccess: NewSiteAccessRepository(database),
		Shifts:     NewShiftRepository(database),
	}
}
