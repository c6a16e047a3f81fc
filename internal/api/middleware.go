package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/services"
)

// AuthRequired loads the acting user and resolves their capability once per
// request. Deactivated accounts are rejected even with a valid token.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	tokenValue, err := requestToken(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	claims, err := handler.parseToken(tokenValue)
	if err != nil {
		if c.Cookies(authCookieName) != "" {
			handler.clearAuthCookie(c)
		}
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := handler.authService.FindActiveByID(claims.UserID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	capability, err := handler.scopeResolver.Resolve(&user)
	if err != nil {
		handler.logger.Printf("api: resolve scope for %s: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to resolve access")
	}

	c.Locals(contextUserKey, &user)
	c.Locals(contextCapabilityKey, capability)
	return c.Next()
}

func (handler *Handler) RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		if _, ok := allowed[user.Role]; !ok {
			return apiError(c, fiber.StatusForbidden, "forbidden")
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// currentCapability returns the zero capability when none was resolved.
func currentCapability(c *fiber.Ctx) services.Capability {
	capability, _ := c.Locals(contextCapabilityKey).(services.Capability)
	return capability
}
