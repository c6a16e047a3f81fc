package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shiftdesk/internal/services"
)

type shiftCreateRequest struct {
	UserID    string `json:"userId"`
	SiteID    string `json:"siteId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartMin  int    `json:"startMin"`
	EndMin    int    `json:"endMin"`
	Status    string `json:"status"`
	Checklist string `json:"checklist"`
}

type shiftPatchRequest struct {
	UserID    *string `json:"userId"`
	SiteID    *string `json:"siteId"`
	DayOfWeek *int    `json:"dayOfWeek"`
	StartMin  *int    `json:"startMin"`
	EndMin    *int    `json:"endMin"`
	Status    *string `json:"status"`
	Checklist *string `json:"checklist"`
}

func (handler *Handler) ListShifts(c *fiber.Ctx) error {
	shifts, err := handler.shiftService.ListVisibleShifts(currentCapability(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load shifts")
	}
	return c.JSON(shifts)
}

func (handler *Handler) CreateShift(c *fiber.Ctx) error {
	var request shiftCreateRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	shift, err := handler.shiftService.CreateShift(services.ShiftInput{
		UserID:    request.UserID,
		SiteID:    request.SiteID,
		DayOfWeek: request.DayOfWeek,
		StartMin:  request.StartMin,
		EndMin:    request.EndMin,
		Status:    request.Status,
		Checklist: request.Checklist,
	}, currentCapability(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create shift")
	}
	return c.Status(fiber.StatusCreated).JSON(shift)
}

func (handler *Handler) UpdateShift(c *fiber.Ctx) error {
	var request shiftPatchRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	shift, err := handler.shiftService.UpdateShift(c.Params("id"), services.ShiftPatch{
		UserID:    request.UserID,
		SiteID:    request.SiteID,
		DayOfWeek: request.DayOfWeek,
		StartMin:  request.StartMin,
		EndMin:    request.EndMin,
		Status:    request.Status,
		Checklist: request.Checklist,
	}, currentCapability(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update shift")
	}
	return c.JSON(shift)
}

func (handler *Handler) DeleteShift(c *fiber.Ctx) error {
	if err := handler.shiftService.DeleteShift(c.Params("id"), currentCapability(c)); err != nil {
		return handler.respondServiceError(c, err, "failed to delete shift")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ConfirmShift(c *fiber.Ctx) error {
	shift, err := handler.shiftService.ConfirmOwnShift(c.Params("id"), currentCapability(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to confirm shift")
	}
	return c.JSON(shift)
}
