package api

import "github.com/gofiber/fiber/v2"

type accessRequest struct {
	UserID string `json:"userId" query:"userId"`
	SiteID string `json:"siteId" query:"siteId"`
}

func (handler *Handler) ListAccess(c *fiber.Ctx) error {
	grants, err := handler.accessService.List(currentCapability(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load access")
	}
	return c.JSON(grants)
}

func (handler *Handler) GrantAccess(c *fiber.Ctx) error {
	var request accessRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	grant, err := handler.accessService.Grant(currentCapability(c), request.UserID, request.SiteID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to grant access")
	}
	return c.Status(fiber.StatusCreated).JSON(grant)
}

// RevokeAccess reads the pair from the query string, or from a JSON body.
func (handler *Handler) RevokeAccess(c *fiber.Ctx) error {
	var request accessRequest
	if err := c.QueryParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if request.UserID == "" && request.SiteID == "" && len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
	}
	if err := handler.accessService.Revoke(currentCapability(c), request.UserID, request.SiteID); err != nil {
		return handler.respondServiceError(c, err, "failed to revoke access")
	}
	return c.JSON(fiber.Map{"ok": true})
}
