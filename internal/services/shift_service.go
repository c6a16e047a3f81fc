package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/shiftdesk/internal/models"
	"gorm.io/gorm"
)

type ShiftRepository interface {
	FindByID(shiftID string) (models.Shift, bool, error)
	CreateChecked(shift *models.Shift, guard func(siblings []models.Shift) error) error
	UpdateChecked(shift *models.Shift, guard func(siblings []models.Shift) error) error
	UpdateStatus(shiftID string, status string) (models.Shift, error)
	Delete(shiftID string) (bool, error)
	ListAll() ([]models.Shift, error)
	ListBySiteIDs(siteIDs []string) ([]models.Shift, error)
	ListByUser(userID string) ([]models.Shift, error)
}

type ShiftUserDirectory interface {
	FindByID(userID string) (models.User, error)
}

type ShiftSiteDirectory interface {
	FindByID(siteID string) (models.Site, error)
}

type ShiftInput struct {
	UserID    string
	SiteID    string
	DayOfWeek int
	StartMin  int
	EndMin    int
	Status    string
	Checklist string
}

// ShiftPatch holds the fields to overwrite; nil keeps the stored value.
type ShiftPatch struct {
	UserID    *string
	SiteID    *string
	DayOfWeek *int
	StartMin  *int
	EndMin    *int
	Status    *string
	Checklist *string
}

type ShiftService struct {
	shifts ShiftRepository
	users  ShiftUserDirectory
	sites  ShiftSiteDirectory
	events ShiftEventPublisher
	now    func() time.Time
}

func NewShiftService(shifts ShiftRepository, users ShiftUserDirectory, sites ShiftSiteDirectory, events ShiftEventPublisher) *ShiftService {
	if events == nil {
		events = discardShiftEvents{}
	}
	return &ShiftService{
		shifts: shifts,
		users:  users,
		sites:  sites,
		events: events,
		now:    time.Now,
	}
}

func (service *ShiftService) CreateShift(input ShiftInput, capability Capability) (models.Shift, error) {
	candidate := models.Shift{
		UserID:    strings.TrimSpace(input.UserID),
		SiteID:    strings.TrimSpace(input.SiteID),
		DayOfWeek: input.DayOfWeek,
		StartMin:  input.StartMin,
		EndMin:    input.EndMin,
		Status:    normalizeShiftStatus(input.Status),
		Checklist: strings.TrimSpace(input.Checklist),
	}
	if err := validateShiftShape(candidate); err != nil {
		return models.Shift{}, err
	}
	if !capability.CanManageSite(candidate.SiteID) {
		return models.Shift{}, ErrForbidden
	}

	employee, err := service.loadReferences(candidate)
	if err != nil {
		return models.Shift{}, err
	}

	if err := service.shifts.CreateChecked(&candidate, conflictGuard(candidate)); err != nil {
		return models.Shift{}, persistError(err)
	}

	service.publish(ShiftCreated, candidate, capability, &employee)
	return candidate, nil
}

func (service *ShiftService) UpdateShift(shiftID string, patch ShiftPatch, capability Capability) (models.Shift, error) {
	current, err := service.loadShift(shiftID)
	if err != nil {
		return models.Shift{}, err
	}
	if !capability.CanManageSite(current.SiteID) {
		return models.Shift{}, ErrForbidden
	}

	candidate := mergeShiftPatch(current, patch)
	if err := validateShiftShape(candidate); err != nil {
		return models.Shift{}, err
	}
	if !capability.CanManageSite(candidate.SiteID) {
		return models.Shift{}, ErrForbidden
	}

	employee, err := service.loadReferences(candidate)
	if err != nil {
		return models.Shift{}, err
	}

	if err := service.shifts.UpdateChecked(&candidate, conflictGuard(candidate)); err != nil {
		return models.Shift{}, persistError(err)
	}

	service.publish(ShiftUpdated, candidate, capability, &employee)
	return candidate, nil
}

func (service *ShiftService) DeleteShift(shiftID string, capability Capability) error {
	current, err := service.loadShift(shiftID)
	if err != nil {
		return err
	}
	if !capability.CanManageSite(current.SiteID) {
		return ErrForbidden
	}

	deleted, err := service.shifts.Delete(current.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShiftPersistFailed, err)
	}
	if !deleted {
		return ErrNotFound
	}

	service.publish(ShiftDeleted, current, capability, nil)
	return nil
}

// ConfirmOwnShift marks the caller's own shift CONFIRMED. Repeating it is a no-op success.
func (service *ShiftService) ConfirmOwnShift(shiftID string, capability Capability) (models.Shift, error) {
	current, err := service.loadShift(shiftID)
	if err != nil {
		return models.Shift{}, err
	}
	if !capability.OwnsShift(current) {
		return models.Shift{}, ErrForbidden
	}

	confirmed, err := service.shifts.UpdateStatus(current.ID, models.ShiftConfirmed)
	if err != nil {
		return models.Shift{}, persistError(err)
	}

	service.publish(ShiftConfirmed, confirmed, capability, nil)
	return confirmed, nil
}

func (service *ShiftService) ListVisibleShifts(capability Capability) ([]models.Shift, error) {
	switch capability.Kind() {
	case ScopeAllSites:
		return service.shifts.ListAll()
	case ScopeGrantedSites:
		return service.shifts.ListBySiteIDs(capability.SiteIDs())
	case ScopeOwnRecords:
		return service.shifts.ListByUser(capability.ActorID())
	default:
		return []models.Shift{}, nil
	}
}

func (service *ShiftService) loadShift(shiftID string) (models.Shift, error) {
	shiftID = strings.TrimSpace(shiftID)
	if shiftID == "" {
		return models.Shift{}, ErrNotFound
	}
	shift, found, err := service.shifts.FindByID(shiftID)
	if err != nil {
		return models.Shift{}, fmt.Errorf("%w: %v", ErrShiftLoadFailed, err)
	}
	if !found {
		return models.Shift{}, ErrNotFound
	}
	return shift, nil
}

func (service *ShiftService) loadReferences(candidate models.Shift) (models.User, error) {
	employee, err := service.users.FindByID(candidate.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("%w: employee %s", ErrNotFound, candidate.UserID)
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrShiftLoadFailed, err)
	}
	if service.sites != nil {
		if _, err := service.sites.FindByID(candidate.SiteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.User{}, fmt.Errorf("%w: site %s", ErrNotFound, candidate.SiteID)
			}
			return models.User{}, fmt.Errorf("%w: %v", ErrShiftLoadFailed, err)
		}
	}
	return employee, nil
}

func (service *ShiftService) publish(eventType ShiftEventType, shift models.Shift, capability Capability, employee *models.User) {
	recipient := ShiftRecipient{}
	if employee == nil {
		loaded, err := service.users.FindByID(shift.UserID)
		if err != nil {
			log.Printf("shifts: recipient lookup for %s failed: %v", shift.UserID, err)
		} else {
			employee = &loaded
		}
	}
	if employee != nil {
		recipient = ShiftRecipient{Name: employee.Name, Email: employee.Email}
	}

	shift.User = nil
	shift.Site = nil
	service.events.Publish(ShiftEvent{
		Type:       eventType,
		Shift:      shift,
		ActorID:    capability.ActorID(),
		Recipient:  recipient,
		OccurredAt: service.now().UTC(),
	})
}

func conflictGuard(candidate models.Shift) func(siblings []models.Shift) error {
	slot := SlotFromShift(candidate)
	return func(siblings []models.Shift) error {
		return CheckShiftConflict(slot, siblings)
	}
}

func validateShiftShape(shift models.Shift) error {
	if shift.UserID == "" || shift.SiteID == "" {
		return fmt.Errorf("%w: userId and siteId required", ErrInvalidShiftInput)
	}
	if err := ValidateDayOfWeek(shift.DayOfWeek); err != nil {
		return err
	}
	if _, err := NewInterval(shift.StartMin, shift.EndMin); err != nil {
		return err
	}
	if !models.IsKnownShiftStatus(shift.Status) {
		return fmt.Errorf("%w: status %q", ErrInvalidShiftInput, shift.Status)
	}
	return nil
}

func mergeShiftPatch(current models.Shift, patch ShiftPatch) models.Shift {
	merged := current
	merged.User = nil
	merged.Site = nil
	if patch.UserID != nil {
		merged.UserID = strings.TrimSpace(*patch.UserID)
	}
	if patch.SiteID != nil {
		merged.SiteID = strings.TrimSpace(*patch.SiteID)
	}
	if patch.DayOfWeek != nil {
		merged.DayOfWeek = *patch.DayOfWeek
	}
	if patch.StartMin != nil {
		merged.StartMin = *patch.StartMin
	}
	if patch.EndMin != nil {
		merged.EndMin = *patch.EndMin
	}
	if patch.Status != nil {
		merged.Status = normalizeShiftStatus(*patch.Status)
	}
	if patch.Checklist != nil {
		merged.Checklist = strings.TrimSpace(*patch.Checklist)
	}
	return merged
}

func normalizeShiftStatus(raw string) string {
	status := strings.ToUpper(strings.TrimSpace(raw))
	if status == "" {
		return models.ShiftPlanned
	}
	return status
}

func persistError(err error) error {
	switch {
	case errors.Is(err, ErrOverlapConflict):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %v", ErrShiftPersistFailed, err)
	}
}
