package services

import "github.com/terraincognita07/shiftdesk/internal/models"

type SiteLister interface {
	ListAll() ([]models.Site, error)
}

type UserLister interface {
	ListAll() ([]models.User, error)
}

// DirectoryService serves the read-mostly reference data: sites and staff.
type DirectoryService struct {
	sites SiteLister
	users UserLister
}

func NewDirectoryService(sites SiteLister, users UserLister) *DirectoryService {
	return &DirectoryService{sites: sites, users: users}
}

func (service *DirectoryService) ListSites(capability Capability) ([]models.Site, error) {
	if capability.Kind() == ScopeNone {
		return nil, ErrForbidden
	}
	return service.sites.ListAll()
}

func (service *DirectoryService) ListUsers(capability Capability) ([]models.User, error) {
	if !capability.CanManage() {
		return nil, ErrForbidden
	}
	return service.users.ListAll()
}
