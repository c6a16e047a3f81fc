package services

import (
	"sort"

	"github.com/terraincognita07/shiftdesk/internal/models"
)

type ScopeKind int

const (
	// ScopeNone is the zero value: nothing may be read or changed.
	ScopeNone ScopeKind = iota
	ScopeOwnRecords
	ScopeGrantedSites
	ScopeAllSites
)

func (kind ScopeKind) String() string {
	switch kind {
	case ScopeOwnRecords:
		return "own_records"
	case ScopeGrantedSites:
		return "granted_sites"
	case ScopeAllSites:
		return "all_sites"
	default:
		return "none"
	}
}

// Capability is what an acting user may do, resolved once per request.
type Capability struct {
	kind    ScopeKind
	actorID string
	siteIDs map[string]struct{}
}

func AllSitesCapability(actorID string) Capability {
	return Capability{kind: ScopeAllSites, actorID: actorID}
}

func GrantedSitesCapability(actorID string, siteIDs []string) Capability {
	granted := make(map[string]struct{}, len(siteIDs))
	for _, siteID := range siteIDs {
		granted[siteID] = struct{}{}
	}
	return Capability{kind: ScopeGrantedSites, actorID: actorID, siteIDs: granted}
}

func OwnRecordsCapability(actorID string) Capability {
	return Capability{kind: ScopeOwnRecords, actorID: actorID}
}

func (capability Capability) Kind() ScopeKind {
	return capability.kind
}

func (capability Capability) ActorID() string {
	return capability.actorID
}

func (capability Capability) CanManage() bool {
	return capability.kind == ScopeAllSites || capability.kind == ScopeGrantedSites
}

func (capability Capability) CanManageSite(siteID string) bool {
	switch capability.kind {
	case ScopeAllSites:
		return true
	case ScopeGrantedSites:
		_, ok := capability.siteIDs[siteID]
		return ok
	default:
		return false
	}
}

// OwnsShift is true only for an employee scope acting on its own shift.
func (capability Capability) OwnsShift(shift models.Shift) bool {
	return capability.kind == ScopeOwnRecords && capability.actorID != "" && capability.actorID == shift.UserID
}

func (capability Capability) SiteIDs() []string {
	siteIDs := make([]string, 0, len(capability.siteIDs))
	for siteID := range capability.siteIDs {
		siteIDs = append(siteIDs, siteID)
	}
	sort.Strings(siteIDs)
	return siteIDs
}

type GrantStore interface {
	ListGrantedSiteIDs(userID string) ([]string, error)
	IsGranted(userID string, siteID string) (bool, error)
}

type AccessScopeResolver struct {
	grants GrantStore
}

func NewAccessScopeResolver(grants GrantStore) *AccessScopeResolver {
	return &AccessScopeResolver{grants: grants}
}

func (resolver *AccessScopeResolver) Resolve(user *models.User) (Capability, error) {
	if user == nil || !user.Active {
		return Capability{}, nil
	}

	switch user.Role {
	case models.RoleAdmin:
		return AllSitesCapability(user.ID), nil
	case models.RoleSupervisor:
		siteIDs, err := resolver.grants.ListGrantedSiteIDs(user.ID)
		if err != nil {
			return Capability{}, err
		}
		return GrantedSitesCapability(user.ID, siteIDs), nil
	case models.RoleEmployee:
		return OwnRecordsCapability(user.ID), nil
	default:
		return Capability{}, nil
	}
}

// CanManageSite answers a single site check without resolving the full grant set.
func (resolver *AccessScopeResolver) CanManageSite(user *models.User, siteID string) (bool, error) {
	if user == nil || !user.Active {
		return false, nil
	}
	switch user.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleSupervisor:
		return resolver.grants.IsGranted(user.ID, siteID)
	default:
		return false, nil
	}
}
