package services

import "github.com/terraincognita07/shiftdesk/internal/models"

type SetupUserRepository interface {
	CountUsers() (int64, error)
	CountActiveByRole(role string) (int64, error)
}

// SetupStatus describes how far the directory is from a usable install.
type SetupStatus struct {
	Users        int64
	ActiveAdmins int64
}

// RequiresSeed is true while the directory has no accounts at all.
func (status SetupStatus) RequiresSeed() bool {
	return status.Users == 0
}

// RequiresAdmin is true when nobody can manage access grants.
func (status SetupStatus) RequiresAdmin() bool {
	return status.ActiveAdmins == 0
}

type SetupService struct {
	users SetupUserRepository
}

func NewSetupService(users SetupUserRepository) *SetupService {
	return &SetupService{users: users}
}

func (service *SetupService) Status() (SetupStatus, error) {
	users, err := service.users.CountUsers()
	if err != nil {
		return SetupStatus{}, err
	}
	if users == 0 {
		return SetupStatus{}, nil
	}
	admins, err := service.users.CountActiveByRole(models.RoleAdmin)
	if err != nil {
		return SetupStatus{}, err
	}
	return SetupStatus{Users: users, ActiveAdmins: admins}, nil
}
