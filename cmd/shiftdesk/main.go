package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/shiftdesk/internal/api"
	"github.com/terraincognita07/shiftdesk/internal/cli"
	"github.com/terraincognita07/shiftdesk/internal/config"
	"github.com/terraincognita07/shiftdesk/internal/db"
	"github.com/terraincognita07/shiftdesk/internal/i18n"
	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/notify"
	"github.com/terraincognita07/shiftdesk/internal/services"
	"github.com/terraincognita07/shiftdesk/internal/workerpool"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var errUsage = errors.New("usage: shiftdesk [serve|seed|create-user|reset-password|roster]")

func main() {
	if err := runCommand(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func runCommand(args []string, stdin *os.File, out io.Writer) error {
	command := "serve"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "serve":
		return serve()
	case "seed":
		return cli.RunSeedCommand(config.LoadDBPath(), out)
	case "create-user":
		input, err := parseCreateUserFlags(args, out)
		if err != nil {
			return err
		}
		return cli.RunCreateUserCommand(config.LoadDBPath(), input, stdin, out)
	case "reset-password":
		if len(args) != 1 {
			return errors.New("usage: shiftdesk reset-password <email>")
		}
		return cli.RunResetPasswordCommand(config.LoadDBPath(), args[0], out)
	case "roster":
		flags := flag.NewFlagSet("roster", flag.ContinueOnError)
		flags.SetOutput(out)
		language := flags.String("lang", i18n.LangFR, "roster language")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return cli.RunRosterCommand(config.LoadDBPath(), *language, out)
	default:
		return errUsage
	}
}

func parseCreateUserFlags(args []string, out io.Writer) (cli.CreateUserInput, error) {
	flags := flag.NewFlagSet("create-user", flag.ContinueOnError)
	flags.SetOutput(out)

	input := cli.CreateUserInput{}
	flags.StringVar(&input.Name, "name", "", "display name")
	flags.StringVar(&input.Email, "email", "", "login email")
	flags.StringVar(&input.Phone, "phone", "", "phone number")
	flags.StringVar(&input.Role, "role", models.RoleEmployee, "ADMIN, SUPERVISOR or EMPLOYEE")
	flags.StringVar(&input.EmploymentType, "employment", "", "employment type")
	flags.IntVar(&input.HourlyRate, "rate", 0, "hourly rate in cents")
	if err := flags.Parse(args); err != nil {
		return cli.CreateUserInput{}, err
	}

	input.Role = strings.ToUpper(strings.TrimSpace(input.Role))
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return cli.CreateUserInput{}, errors.New("create-user requires -name and -email")
	}
	if !models.IsKnownRole(input.Role) {
		return cli.CreateUserInput{}, fmt.Errorf("unknown role %q", input.Role)
	}
	if input.HourlyRate < 0 {
		return cli.CreateUserInput{}, errors.New("rate must not be negative")
	}
	return input, nil
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	messages, err := i18n.NewManager(cfg.NotifyLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	logSetupHints(database)

	pool := workerpool.NewWorkerPool(cfg.NotifyWorkers, cfg.NotifyQueue)
	dispatcher, err := newDispatcher(cfg, database, pool, messages, log.Default())
	if err != nil {
		pool.Close()
		return err
	}

	app, err := buildApp(cfg, database, dispatcher)
	if err != nil {
		pool.Close()
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("shiftdesk listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, cfg.Location)
	listenErr := app.Listen(":" + cfg.Port)

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := pool.Shutdown(drainCtx); err != nil {
		log.Printf("notification queue not drained: %v", err)
	}

	if listenErr != nil {
		return fmt.Errorf("server exited: %w", listenErr)
	}
	return nil
}

func buildApp(cfg *config.Config, database *gorm.DB, events services.ShiftEventPublisher) (*fiber.App, error) {
	handler, err := api.NewHandler(database, api.HandlerOptions{
		SecretKey:    cfg.SecretKey,
		CookieSecure: cfg.CookieSecure,
		Events:       events,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "shiftdesk",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	api.RegisterRoutes(app, handler)
	return app, nil
}

func corsConfig(origins string) cors.Config {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
	}
}

// newDispatcher picks SMTP for employee mail when configured, the log otherwise,
// and mirrors every event to Telegram when a bot is configured.
func newDispatcher(cfg *config.Config, database *gorm.DB, pool *workerpool.WorkerPool, messages *i18n.Manager, logger *log.Logger) (*notify.Dispatcher, error) {
	var email notify.Sink = notify.NewLogSink(logger)
	if cfg.SMTP.Enabled() {
		email = notify.NewSMTPSink(cfg.SMTP)
	} else {
		logger.Printf("SMTP not configured, shift emails go to the log")
	}

	var ops notify.Sink
	if cfg.Telegram.Enabled() {
		telegram, err := notify.NewTelegramSink(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			return nil, err
		}
		ops = telegram
	}

	repositories := db.NewRepositories(database)
	return notify.NewDispatcher(pool, messages, email, ops, repositories.Sites, repositories.Users, logger, notify.DispatcherConfig{
		Language: cfg.NotifyLanguage,
	}), nil
}

func logSetupHints(database *gorm.DB) {
	status, err := services.NewSetupService(db.NewUserRepository(database)).Status()
	if err != nil {
		log.Printf("setup check failed: %v", err)
		return
	}
	switch {
	case status.RequiresSeed():
		log.Printf("no users yet: run `shiftdesk seed` or `shiftdesk create-user -role ADMIN ...`")
	case status.RequiresAdmin():
		log.Printf("no active ADMIN: site access cannot be granted until one is created")
	}
}
