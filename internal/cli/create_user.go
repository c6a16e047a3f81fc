package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/shiftdesk/internal/db"
	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserExists = errors.New("user already exists")

type CreateUserInput struct {
	Name           string
	Email          string
	Phone          string
	Role           string
	EmploymentType string
	HourlyRate     int
	Password       string
}

// RunCreateUserCommand prompts for the password on stdin without echo.
func RunCreateUserCommand(dbPath string, input CreateUserInput, stdin *os.File, out io.Writer) error {
	password, err := promptNewPassword(stdin, out)
	if err != nil {
		return err
	}
	input.Password = password

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	user, err := CreateUser(database, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Created %s %s (%s)\n", user.Role, user.Email, user.ID)
	return nil
}

func CreateUser(database *gorm.DB, input CreateUserInput) (models.User, error) {
	email := services.NormalizeAuthEmail(input.Email)
	if email == "" {
		return models.User{}, errors.New("a valid email is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.User{}, errors.New("name is required")
	}
	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if role == "" {
		role = models.RoleEmployee
	}
	if !models.IsKnownRole(role) {
		return models.User{}, fmt.Errorf("unknown role %q", input.Role)
	}
	if input.HourlyRate < 0 {
		return models.User{}, errors.New("hourly rate must not be negative")
	}
	if err := services.ValidatePasswordStrength(input.Password); err != nil {
		return models.User{}, fmt.Errorf("password rejected: %w", err)
	}

	users := db.NewUserRepository(database)
	if _, err := users.FindByNormalizedEmail(email); err == nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrUserExists, email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:           name,
		Email:          email,
		Phone:          strings.TrimSpace(input.Phone),
		PasswordHash:   string(passwordHash),
		Role:           role,
		Active:         true,
		EmploymentType: strings.TrimSpace(input.EmploymentType),
		HourlyRate:     input.HourlyRate,
	}
	if err := users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
