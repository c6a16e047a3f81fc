package services

import (
	"time"

	"github.com/terraincognita07/shiftdesk/internal/models"
)

type ShiftEventType string

const (
	ShiftCreated   ShiftEventType = "shift.created"
	ShiftUpdated   ShiftEventType = "shift.updated"
	ShiftDeleted   ShiftEventType = "shift.deleted"
	ShiftConfirmed ShiftEventType = "shift.confirmed"
)

type ShiftRecipient struct {
	Name  string
	Email string
}

// ShiftEvent is emitted after a shift mutation has been committed.
type ShiftEvent struct {
	Type       ShiftEventType
	Shift      models.Shift
	ActorID    string
	Recipient  ShiftRecipient
	OccurredAt time.Time
}

// ShiftEventPublisher receives committed events. Implementations must not block
// the caller on delivery and have no way to fail the mutation.
type ShiftEventPublisher interface {
	Publish(event ShiftEvent)
}

type discardShiftEvents struct{}

func (discardShiftEvents) Publish(ShiftEvent) {}
