package services

import "github.com/terraincognita07/shiftdesk/internal/models"

// Slot is a candidate placement for one employee on one day.
type Slot struct {
	ShiftID    string
	EmployeeID string
	DayOfWeek  int
	Interval   Interval
}

func SlotFromShift(shift models.Shift) Slot {
	return Slot{
		ShiftID:    shift.ID,
		EmployeeID: shift.UserID,
		DayOfWeek:  shift.DayOfWeek,
		Interval:   Interval{Start: shift.StartMin, End: shift.EndMin},
	}
}

// CheckShiftConflict returns an *OverlapConflictError for the first sibling
// whose interval intersects the candidate. Every status occupies its interval.
func CheckShiftConflict(candidate Slot, siblings []models.Shift) error {
	for _, sibling := range siblings {
		if candidate.ShiftID != "" && sibling.ID == candidate.ShiftID {
			continue
		}
		if sibling.UserID != candidate.EmployeeID || sibling.DayOfWeek != candidate.DayOfWeek {
			continue
		}

		existing := Interval{Start: sibling.StartMin, End: sibling.EndMin}
		if candidate.Interval.Overlaps(existing) {
			return &OverlapConflictError{
				ShiftID:   sibling.ID,
				DayOfWeek: sibling.DayOfWeek,
				StartMin:  sibling.StartMin,
				EndMin:    sibling.EndMin,
			}
		}
	}
	return nil
}
