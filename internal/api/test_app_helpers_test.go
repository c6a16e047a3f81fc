package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shiftdesk/internal/db"
	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "Passw0rd!"

type testWorld struct {
	app        *fiber.App
	database   *gorm.DB
	admin      models.User
	supervisor models.User
	employee   models.User
	other      models.User
	granted    models.Site
	ungranted  models.Site
	events     *capturedEvents
}

type capturedEvents struct {
	events []services.ShiftEvent
}

func (captured *capturedEvents) Publish(event services.ShiftEvent) {
	captured.events = append(captured.events, event)
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "shiftdesk-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close(database) })

	events := &capturedEvents{}
	handler, err := NewHandler(database, HandlerOptions{SecretKey: "test-secret-key-with-enough-length", Events: events})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	app := fiber.New()
	RegisterRoutes(app, handler)

	world := &testWorld{app: app, database: database, events: events}
	world.admin = createTestUser(t, database, "Admin", "admin@example.com", models.RoleAdmin, 0, true)
	world.supervisor = createTestUser(t, database, "Sam Supervisor", "sup@example.com", models.RoleSupervisor, 0, true)
	world.employee = createTestUser(t, database, "Emma Employee", "emma@example.com", models.RoleEmployee, 2200, true)
	world.other = createTestUser(t, database, "Oscar Other", "oscar@example.com", models.RoleEmployee, 1800, true)
	world.granted = createTestSite(t, database, "Laverie Centre", "Paris")
	world.ungranted = createTestSite(t, database, "Laverie Nord", "Lille")

	if _, err := db.NewSiteAccessRepository(database).Grant(world.supervisor.ID, world.granted.ID); err != nil {
		t.Fatalf("grant supervisor: %v", err)
	}
	return world
}

func createTestUser(t *testing.T, database *gorm.DB, name string, email string, role string, rate int, active bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
		HourlyRate:   rate,
	}
	if err := db.NewUserRepository(database).Create(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createTestSite(t *testing.T, database *gorm.DB, name string, city string) models.Site {
	t.Helper()

	site := models.Site{Name: name, City: city}
	if err := db.NewSiteRepository(database).Create(&site); err != nil {
		t.Fatalf("create site %s: %v", name, err)
	}
	return site
}

func loginToken(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": testPassword,
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", email, response.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
	}
	decodeBody(t, response, &payload)
	if payload.Token == "" {
		t.Fatalf("login %s: empty token", email)
	}
	return payload.Token
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = strings.NewReader(string(raw))
	}
	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	defer response.Body.Close()
	if response.StatusCode != expected {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, strings.TrimSpace(string(raw)))
	}
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createShiftViaAPI(t *testing.T, app *fiber.App, token string, body map[string]any) models.Shift {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/shifts", token, body)
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("create shift: expected 201, got %d: %s", response.StatusCode, strings.TrimSpace(string(raw)))
	}
	var shift models.Shift
	decodeBody(t, response, &shift)
	return shift
}
