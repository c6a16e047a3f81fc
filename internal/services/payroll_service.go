package services

import (
	"math"
	"sort"

	"github.com/terraincognita07/shiftdesk/internal/models"
)

type PayrollEntry struct {
	UserID    string
	Name      string
	Email     string
	Minutes   int
	RateCents int
}

type PayrollRow struct {
	UserID    string  `json:"userId"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Minutes   int     `json:"minutes"`
	Hours     float64 `json:"hours"`
	RateCents int     `json:"rateCents"`
	PayCents  int64   `json:"payCents"`
}

type VisibleShiftReader interface {
	ListVisibleShifts(capability Capability) ([]models.Shift, error)
}

type PayrollService struct {
	shifts VisibleShiftReader
}

func NewPayrollService(shifts VisibleShiftReader) *PayrollService {
	return &PayrollService{shifts: shifts}
}

// Summary totals the caller's visible shifts for the recurring week.
func (service *PayrollService) Summary(capability Capability) ([]PayrollRow, error) {
	if !capability.CanManage() {
		return nil, ErrForbidden
	}
	shifts, err := service.shifts.ListVisibleShifts(capability)
	if err != nil {
		return nil, err
	}
	return AggregatePayroll(PayrollEntriesFromShifts(shifts)), nil
}

func PayrollEntriesFromShifts(shifts []models.Shift) []PayrollEntry {
	entries := make([]PayrollEntry, 0, len(shifts))
	for _, shift := range shifts {
		entry := PayrollEntry{
			UserID:  shift.UserID,
			Minutes: shift.DurationMin(),
		}
		if shift.User != nil {
			entry.Name = shift.User.Name
			entry.Email = shift.User.Email
			entry.RateCents = shift.User.HourlyRate
		}
		entries = append(entries, entry)
	}
	return entries
}

// AggregatePayroll folds entries into one row per employee, highest pay first.
// Equal pay is ordered by name, then user id.
func AggregatePayroll(entries []PayrollEntry) []PayrollRow {
	rows := make([]PayrollRow, 0)
	indexByUser := make(map[string]int)
	for _, entry := range entries {
		index, ok := indexByUser[entry.UserID]
		if !ok {
			index = len(rows)
			indexByUser[entry.UserID] = index
			rows = append(rows, PayrollRow{
				UserID: entry.UserID,
				Name:   entry.Name,
				Email:  entry.Email,
			})
		}
		rows[index].Minutes += entry.Minutes
		rows[index].RateCents = entry.RateCents
	}

	for index := range rows {
		rows[index].Hours = float64(rows[index].Minutes) / 60
		rows[index].PayCents = roundHalfUp(rows[index].Hours * float64(rows[index].RateCents))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PayCents != rows[j].PayCents {
			return rows[i].PayCents > rows[j].PayCents
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows
}

func roundHalfUp(value float64) int64 {
	return int64(math.Floor(value + 0.5))
}
