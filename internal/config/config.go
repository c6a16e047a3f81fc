package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/shiftdesk/internal/notify"
)

const minSecretKeyLength = 32

var insecureSecretPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses an example placeholder")
	ErrSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
)

type TelegramConfig struct {
	Token  string
	ChatID int64
}

func (cfg TelegramConfig) Enabled() bool {
	return cfg.Token != "" && cfg.ChatID != 0
}

// Config centralises environment and runtime configuration.
type Config struct {
	Port           string
	DBPath         string
	SecretKey      string
	Location       *time.Location
	CookieSecure   bool
	NotifyLanguage string
	NotifyWorkers  int
	NotifyQueue    int
	CORSOrigins    string
	SMTP           notify.SMTPConfig
	Telegram       TelegramConfig
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() (*Config, error) {
	port, err := ResolvePort()
	if err != nil {
		return nil, err
	}
	secretKey, err := ResolveSecretKey()
	if err != nil {
		return nil, err
	}
	location, err := resolveLocation(getEnvOrDefault("TZ", "UTC"))
	if err != nil {
		return nil, err
	}
	telegram, err := resolveTelegram()
	if err != nil {
		return nil, err
	}
	workers, err := parsePositiveIntEnv("NOTIFY_WORKERS", 2)
	if err != nil {
		return nil, err
	}
	queue, err := parsePositiveIntEnv("NOTIFY_QUEUE", 64)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           port,
		DBPath:         getEnvOrDefault("DB_PATH", filepath.Join("data", "shiftdesk.db")),
		SecretKey:      secretKey,
		Location:       location,
		CookieSecure:   parseBoolEnv(os.Getenv("COOKIE_SECURE")),
		NotifyLanguage: getEnvOrDefault("NOTIFY_LANGUAGE", "fr"),
		NotifyWorkers:  workers,
		NotifyQueue:    queue,
		CORSOrigins:    getEnvOrDefault("CORS_ORIGINS", "http://localhost:5173"),
		SMTP: notify.SMTPConfig{
			Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Port:     getEnvOrDefault("SMTP_PORT", "587"),
			User:     strings.TrimSpace(os.Getenv("SMTP_USER")),
			Password: os.Getenv("SMTP_PASS"),
			From:     strings.TrimSpace(os.Getenv("SMTP_FROM")),
		},
		Telegram: telegram,
	}, nil
}

// LoadDBPath is enough for the operator commands, which never sign tokens.
func LoadDBPath() string {
	_ = godotenv.Load()
	return getEnvOrDefault("DB_PATH", filepath.Join("data", "shiftdesk.db"))
}

func ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretPlaceholders[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func ResolvePort() (string, error) {
	raw := getEnvOrDefault("PORT", "4000")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveLocation(name string) (*time.Location, error) {
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", name, err)
	}
	return location, nil
}

func resolveTelegram() (TelegramConfig, error) {
	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	rawChatID := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID"))
	if token == "" || rawChatID == "" {
		return TelegramConfig{}, nil
	}
	chatID, err := strconv.ParseInt(rawChatID, 10, 64)
	if err != nil {
		return TelegramConfig{}, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q", rawChatID)
	}
	return TelegramConfig{Token: token, ChatID: chatID}, nil
}

func parsePositiveIntEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

func getEnvOrDefault(key string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseBoolEnv(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
