package api

import (
	"bytes"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shiftdesk/internal/services"
)

func (handler *Handler) PayrollSummary(c *fiber.Ctx) error {
	rows, err := handler.payrollService.Summary(currentCapability(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build payroll")
	}

	var totalMinutes int
	var totalPay int64
	for _, row := range rows {
		totalMinutes += row.Minutes
		totalPay += row.PayCents
	}
	return c.JSON(fiber.Map{
		"rows":          rows,
		"totalMinutes":  totalMinutes,
		"totalPayCents": totalPay,
	})
}

func (handler *Handler) ExportHoursCSV(c *fiber.Ctx) error {
	rows, err := handler.exportService.BuildHoursRows(currentCapability(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	var output bytes.Buffer
	writeCSVLine(&output, services.HoursExportHeaders)
	for _, row := range rows {
		writeCSVLine(&output, row.Cells())
	}

	filename := "shiftdesk-hours-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(output.Bytes())
}

func writeCSVLine(output *bytes.Buffer, cells []string) {
	quoted := make([]string, len(cells))
	for index, cell := range cells {
		quoted[index] = quoteCSVCell(cell)
	}
	output.WriteString(strings.Join(quoted, ","))
	output.WriteString("\n")
}
