package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/shiftdesk/internal/models"
	"gorm.io/gorm"
)

var ErrAccessGrantRole = errors.New("site access requires a supervisor")

type SiteAccessRepository interface {
	ListWithRelations() ([]models.SiteAccess, error)
	Grant(userID string, siteID string) (models.SiteAccess, error)
	Revoke(userID string, siteID string) (bool, error)
}

type SiteAccessService struct {
	grants SiteAccessRepository
	users  ShiftUserDirectory
	sites  ShiftSiteDirectory
}

func NewSiteAccessService(grants SiteAccessRepository, users ShiftUserDirectory, sites ShiftSiteDirectory) *SiteAccessService {
	return &SiteAccessService{grants: grants, users: users, sites: sites}
}

func (service *SiteAccessService) List(capability Capability) ([]models.SiteAccess, error) {
	if capability.Kind() != ScopeAllSites {
		return nil, ErrForbidden
	}
	return service.grants.ListWithRelations()
}

// Grant is idempotent: granting an existing pair returns the stored row.
func (service *SiteAccessService) Grant(capability Capability, userID string, siteID string) (models.SiteAccess, error) {
	if capability.Kind() != ScopeAllSites {
		return models.SiteAccess{}, ErrForbidden
	}
	userID, siteID, err := normalizeAccessPair(userID, siteID)
	if err != nil {
		return models.SiteAccess{}, err
	}

	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.SiteAccess{}, referenceError("user", userID, err)
	}
	if user.Role != models.RoleSupervisor {
		return models.SiteAccess{}, ErrAccessGrantRole
	}
	if _, err := service.sites.FindByID(siteID); err != nil {
		return models.SiteAccess{}, referenceError("site", siteID, err)
	}

	return service.grants.Grant(userID, siteID)
}

func (service *SiteAccessService) Revoke(capability Capability, userID string, siteID string) error {
	if capability.Kind() != ScopeAllSites {
		return ErrForbidden
	}
	userID, siteID, err := normalizeAccessPair(userID, siteID)
	if err != nil {
		return err
	}

	removed, err := service.grants.Revoke(userID, siteID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func normalizeAccessPair(userID string, siteID string) (string, string, error) {
	userID = strings.TrimSpace(userID)
	siteID = strings.TrimSpace(siteID)
	if userID == "" || siteID == "" {
		return "", "", fmt.Errorf("%w: userId and siteId required", ErrInvalidShiftInput)
	}
	return userID, siteID, nil
}

func referenceError(kind string, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return err
}
