package services

import (
	"strconv"

	"github.com/terraincognita07/shiftdesk/internal/models"
)

var HoursExportHeaders = []string{
	"dayOfWeek",
	"employee",
	"employeeEmail",
	"hourlyRateCents",
	"site",
	"city",
	"start",
	"end",
	"durationMin",
	"status",
	"checklist",
}

type HoursExportRow struct {
	DayOfWeek       int
	Employee        string
	EmployeeEmail   string
	HourlyRateCents string
	Site            string
	City            string
	Start           int
	End             int
	DurationMin     int
	Status          string
	Checklist       string
}

func (row HoursExportRow) Cells() []string {
	return []string{
		strconv.Itoa(row.DayOfWeek),
		row.Employee,
		row.EmployeeEmail,
		row.HourlyRateCents,
		row.Site,
		row.City,
		strconv.Itoa(row.Start),
		strconv.Itoa(row.End),
		strconv.Itoa(row.DurationMin),
		row.Status,
		row.Checklist,
	}
}

type ExportService struct {
	shifts VisibleShiftReader
}

func NewExportService(shifts VisibleShiftReader) *ExportService {
	return &ExportService{shifts: shifts}
}

func (service *ExportService) BuildHoursRows(capability Capability) ([]HoursExportRow, error) {
	if !capability.CanManage() {
		return nil, ErrForbidden
	}
	shifts, err := service.shifts.ListVisibleShifts(capability)
	if err != nil {
		return nil, err
	}

	rows := make([]HoursExportRow, 0, len(shifts))
	for _, shift := range shifts {
		rows = append(rows, buildHoursExportRow(shift))
	}
	return rows, nil
}

func buildHoursExportRow(shift models.Shift) HoursExportRow {
	row := HoursExportRow{
		DayOfWeek:   shift.DayOfWeek,
		Start:       shift.StartMin,
		End:         shift.EndMin,
		DurationMin: shift.DurationMin(),
		Status:      shift.Status,
		Checklist:   shift.Checklist,
	}
	if shift.User != nil {
		row.Employee = shift.User.Name
		row.EmployeeEmail = shift.User.Email
		row.HourlyRateCents = strconv.Itoa(shift.User.HourlyRate)
	}
	if shift.Site != nil {
		row.Site = shift.Site.Name
		row.City = shift.Site.City
	}
	return row
}
