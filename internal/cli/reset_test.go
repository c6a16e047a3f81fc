package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/shiftdesk/internal/db"
	"github.com/terraincognita07/shiftdesk/internal/i18n"
	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openCLITestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cli.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close(database) })
	return database
}

func TestCreateUserThenResetPassword(t *testing.T) {
	database := openCLITestDB(t)

	user, err := CreateUser(database, CreateUserInput{
		Name:       "Marie Tremblay",
		Email:      " Marie@Example.com ",
		Role:       "employee",
		HourlyRate: 2100,
		Password:   "Tremblay2024",
	})
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if user.Email != "marie@example.com" || user.Role != models.RoleEmployee || !user.Active {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := CreateUser(database, CreateUserInput{Name: "Dup", Email: "MARIE@example.com", Password: "Tremblay2024"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	temporary, err := ResetPassword(database, "marie@example.com")
	if err != nil {
		t.Fatalf("ResetPassword() unexpected error: %v", err)
	}

	stored, err := db.NewUserRepository(database).FindByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !stored.MustChangePassword {
		t.Fatal("expected must-change flag after reset")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(temporary)); err != nil {
		t.Fatalf("expected temporary password stored: %v", err)
	}

	_, err = services.NewAuthService(db.NewUserRepository(database)).Authenticate("marie@example.com", temporary)
	if !errors.Is(err, services.ErrAuthPasswordRequired) {
		t.Fatalf("expected ErrAuthPasswordRequired after reset, got %v", err)
	}
}

func TestCreateUserValidatesInput(t *testing.T) {
	database := openCLITestDB(t)

	tests := map[string]CreateUserInput{
		"bad email":     {Name: "A", Email: "nope", Password: "Tremblay2024"},
		"missing name":  {Email: "a@example.com", Password: "Tremblay2024"},
		"unknown role":  {Name: "A", Email: "a@example.com", Role: "OWNER", Password: "Tremblay2024"},
		"weak password": {Name: "A", Email: "a@example.com", Password: "short"},
		"negative rate": {Name: "A", Email: "a@example.com", HourlyRate: -1, Password: "Tremblay2024"},
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := CreateUser(database, input); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestResetPasswordUnknownUser(t *testing.T) {
	database := openCLITestDB(t)
	if _, err := ResetPassword(database, "ghost@example.com"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestReadSecretLineTrimsLineEnding(t *testing.T) {
	secret, err := readSecretLine(strings.NewReader("Tremblay2024\r\nrest"))
	if err != nil {
		t.Fatalf("readSecretLine() unexpected error: %v", err)
	}
	if string(secret) != "Tremblay2024" {
		t.Fatalf("unexpected secret %q", secret)
	}

	shared := strings.NewReader("first\nsecond\n")
	if one, _ := readSecretLine(shared); string(one) != "first" {
		t.Fatalf("unexpected first line %q", one)
	}
	if two, _ := readSecretLine(shared); string(two) != "second" {
		t.Fatalf("expected second prompt to see the next line, got %q", two)
	}

	secret, err = readSecretLine(strings.NewReader("no-newline"))
	if err != nil || string(secret) != "no-newline" {
		t.Fatalf("expected EOF line accepted, got %q (%v)", secret, err)
	}
}

func TestRenderRosterGroupsByDay(t *testing.T) {
	messages, err := i18n.NewManager("fr")
	if err != nil {
		t.Fatalf("i18n.NewManager() unexpected error: %v", err)
	}

	output := RenderRoster([]models.Shift{
		{DayOfWeek: 1, StartMin: 17 * 60, EndMin: 20 * 60, Status: models.ShiftPlanned, User: &models.User{Name: "Employé 1"}, Site: &models.Site{Name: "AMECCI"}},
		{DayOfWeek: 5, StartMin: 9 * 60, EndMin: 11*60 + 30, Status: models.ShiftConfirmed, UserID: "emp-2", SiteID: "site-9"},
	}, messages, "fr")

	for _, fragment := range []string{"Horaire hebdomadaire", "LUNDI", "VENDREDI", "17:00-20:00", "AMECCI", "09:00-11:30", "site-9", "[CONFIRMED]"} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected %q in roster:\n%s", fragment, output)
		}
	}
	if strings.Contains(output, "MARDI") {
		t.Fatal("expected empty days omitted")
	}

	empty := RenderRoster(nil, messages, "en")
	if !strings.Contains(empty, "No shifts scheduled.") {
		t.Fatalf("expected empty roster note, got %q", empty)
	}
}
