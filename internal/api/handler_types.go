package api

import (
	"log"
	"time"

	"github.com/terraincognita07/shiftdesk/internal/services"
)

type Handler struct {
	secretKey    []byte
	cookieSecure bool
	logger       *log.Logger
	loginLimiter *attemptLimiter

	authService      *services.AuthService
	scopeResolver    *services.AccessScopeResolver
	shiftService     *services.ShiftService
	payrollService   *services.PayrollService
	exportService    *services.ExportService
	accessService    *services.SiteAccessService
	directoryService *services.DirectoryService
}

const (
	authCookieName       = "shiftdesk_auth"
	contextUserKey       = "current_user"
	contextCapabilityKey = "current_capability"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour

	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)
