package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shiftdesk/internal/models"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/health", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")
	managers := handler.RequireRoles(models.RoleAdmin, models.RoleSupervisor)

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	api.Get("/sites", handler.AuthRequired, handler.ListSites)
	api.Get("/users", handler.AuthRequired, managers, handler.ListUsers)

	access := api.Group("/access", handler.AuthRequired, handler.RequireRoles(models.RoleAdmin))
	access.Get("", handler.ListAccess)
	access.Post("", handler.GrantAccess)
	access.Delete("", handler.RevokeAccess)

	shifts := api.Group("/shifts", handler.AuthRequired)
	shifts.Get("", handler.ListShifts)
	shifts.Post("", managers, handler.CreateShift)
	shifts.Patch("/:id/confirm", handler.ConfirmShift)
	shifts.Patch("/:id", managers, handler.UpdateShift)
	shifts.Delete("/:id", managers, handler.DeleteShift)

	api.Get("/payroll/summary", handler.AuthRequired, managers, handler.PayrollSummary)
	api.Get("/export/hours.csv", handler.AuthRequired, managers, handler.ExportHoursCSV)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
