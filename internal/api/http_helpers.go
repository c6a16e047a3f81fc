package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shiftdesk/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func shiftErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInterval),
		errors.Is(err, services.ErrInvalidShiftInput),
		errors.Is(err, services.ErrAccessGrantRole):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrOverlapConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError maps a service failure to a status. Internal failures
// are logged and answered with the generic fallback message.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	status := shiftErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		handler.logger.Printf("api: %s %s: %v", c.Method(), c.Path(), err)
		return apiError(c, status, fallback)
	}

	body := fiber.Map{"error": err.Error()}
	var conflict *services.OverlapConflictError
	if errors.As(err, &conflict) {
		body["conflictShiftId"] = conflict.ShiftID
	}
	return c.Status(status).JSON(body)
}

// quoteCSVCell always quotes, doubling embedded quotes.
func quoteCSVCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
