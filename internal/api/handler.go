package api

import (
	"errors"
	"log"
	"strings"

	"github.com/terraincognita07/shiftdesk/internal/db"
	"github.com/terraincognita07/shiftdesk/internal/services"
	"gorm.io/gorm"
)

type HandlerOptions struct {
	SecretKey    string
	CookieSecure bool
	Events       services.ShiftEventPublisher
	Logger       *log.Logger
}

func NewHandler(database *gorm.DB, options HandlerOptions) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(options.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	logger := options.Logger
	if logger == nil {
		logger = log.Default()
	}

	repositories := db.NewRepositories(database)
	shiftService := services.NewShiftService(repositories.Shifts, repositories.Users, repositories.Sites, options.Events)

	return &Handler{
		secretKey:        []byte(options.SecretKey),
		cookieSecure:     options.CookieSecure,
		logger:           logger,
		loginLimiter:     newAttemptLimiter(),
		authService:      services.NewAuthService(repositories.Users),
		scopeResolver:    services.NewAccessScopeResolver(repositories.SiteAccess),
		shiftService:     shiftService,
		payrollService:   services.NewPayrollService(shiftService),
		exportService:    services.NewExportService(shiftService),
		accessService:    services.NewSiteAccessService(repositories.SiteAccess, repositories.Users, repositories.Sites),
		directoryService: services.NewDirectoryService(repositories.Sites, repositories.Users),
	}, nil
}
