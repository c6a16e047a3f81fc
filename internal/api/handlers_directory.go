package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListSites(c *fiber.Ctx) error {
	sites, err := handler.directoryService.ListSites(currentCapability(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load sites")
	}
	return c.JSON(sites)
}

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.directoryService.ListUsers(currentCapability(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load users")
	}
	return c.JSON(users)
}
