package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/services"
)

func TestCreateShiftRejectsOverlapWithConflict(t *testing.T) {
	world := newTestWorld(t)
	token := loginToken(t, world.app, world.admin.Email)

	first := createShiftViaAPI(t, world.app, token, map[string]any{
		"userId": world.employee.ID, "siteId": world.granted.ID,
		"dayOfWeek": 1, "startMin": 480, "endMin": 600,
	})
	if first.Status != models.ShiftPlanned {
		t.Fatalf("expected default status PLANNED, got %q", first.Status)
	}

	response := doJSON(t, world.app, http.MethodPost, "/api/shifts", token, map[string]any{
		"userId": world.employee.ID, "siteId": world.ungranted.ID,
		"dayOfWeek": 1, "startMin": 540, "endMin": 660,
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", response.StatusCode)
	}
	var payload struct {
		ConflictShiftID string `json:"conflictShiftId"`
	}
	decodeBody(t, response, &payload)
	if payload.ConflictShiftID != first.ID {
		t.Fatalf("expected conflict with %s, got %q", first.ID, payload.ConflictShiftID)
	}

	createShiftViaAPI(t, world.app, token, map[string]any{
		"userId": world.employee.ID, "siteId": world.ungranted.ID,
		"dayOfWeek": 1, "startMin": 600, "endMin": 660,
	})

	var count int64
	world.database.Model(&models.Shift{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 stored shifts, got %d", count)
	}
	if len(world.events.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(world.events.events))
	}
}

func TestCreateShiftValidationAndScope(t *testing.T) {
	world := newTestWorld(t)
	admin := loginToken(t, world.app, world.admin.Email)
	supervisor := loginToken(t, world.app, world.supervisor.Email)
	employee := loginToken(t, world.app, world.employee.Email)

	tests := []struct {
		name     string
		token    string
		body     map[string]any
		expected int
	}{
		{
			name:  "empty interval",
			token: admin,
			body: map[string]any{"userId": world.employee.ID, "siteId": world.granted.ID,
				"dayOfWeek": 2, "startMin": 600, "endMin": 600},
			expected: http.StatusBadRequest,
		},
		{
			name:  "day out of range",
			token: admin,
			body: map[string]any{"userId": world.employee.ID, "siteId": world.granted.ID,
				"dayOfWeek": 8, "startMin": 60, "endMin": 120},
			expected: http.StatusBadRequest,
		},
		{
			name:  "unknown employee",
			token: admin,
			body: map[string]any{"userId": "missing", "siteId": world.granted.ID,
				"dayOfWeek": 2, "startMin": 60, "endMin": 120},
			expected: http.StatusNotFound,
		},
		{
			name:  "supervisor outside grant",
			token: supervisor,
			body: map[string]any{"userId": world.employee.ID, "siteId": world.ungranted.ID,
				"dayOfWeek": 2, "startMin": 60, "endMin": 120},
			expected: http.StatusForbidden,
		},
		{
			name:  "employee cannot schedule",
			token: employee,
			body: map[string]any{"userId": world.employee.ID, "siteId": world.granted.ID,
				"dayOfWeek": 2, "startMin": 60, "endMin": 120},
			expected: http.StatusForbidden,
		},
		{
			name:  "supervisor inside grant",
			token: supervisor,
			body: map[string]any{"userId": world.employee.ID, "siteId": world.granted.ID,
				"dayOfWeek": 2, "startMin": 60, "endMin": 120},
			expected: http.StatusCreated,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expectStatus(t, doJSON(t, world.app, http.MethodPost, "/api/shifts", tc.token, tc.body), tc.expected)
		})
	}
}

func TestListShiftsFollowsScope(t *testing.T) {
	world := newTestWorld(t)
	admin := loginToken(t, world.app, world.admin.Email)

	createShiftViaAPI(t, world.app, admin, map[string]any{
		"userId": world.employee.ID, "siteId": world.granted.ID, "dayOfWeek": 1, "startMin": 480, "endMin": 600,
	})
	createShiftViaAPI(t, world.app, admin, map[string]any{
		"userId": world.other.ID, "siteId": world.ungranted.ID, "dayOfWeek": 1, "startMin": 480, "endMin": 600,
	})

	tests := []struct {
		email    string
		expected int
	}{
		{email: world.admin.Email, expected: 2},
		{email: world.supervisor.Email, expected: 1},
		{email: world.employee.Email, expected: 1},
		{email: world.other.Email, expected: 1},
	}
	for _, tc := range tests {
		response := doJSON(t, world.app, http.MethodGet, "/api/shifts", loginToken(t, world.app, tc.email), nil)
		var shifts []models.Shift
		decodeBody(t, response, &shifts)
		response.Body.Close()
		if len(shifts) != tc.expected {
			t.Fatalf("%s: expected %d shifts, got %d", tc.email, tc.expected, len(shifts))
		}
	}
}

func TestUpdateShiftExcludesItselfAndDetectsSiblings(t *testing.T) {
	world := newTestWorld(t)
	token := loginToken(t, world.app, world.admin.Email)

	morning := createShiftViaAPI(t, world.app, token, map[string]any{
		"userId": world.employee.ID, "siteId": world.granted.ID, "dayOfWeek": 3, "startMin": 480, "endMin": 600,
	})
	createShiftViaAPI(t, world.app, token, map[string]any{
		"userId": world.employee.ID, "siteId": world.granted.ID, "dayOfWeek": 3, "startMin": 720, "endMin": 840,
	})

	response := doJSON(t, world.app, http.MethodPatch, "/api/shifts/"+morning.ID, token, map[string]any{"endMin": 660})
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for self-overlapping extension, got %d", response.StatusCode)
	}
	var updated models.Shift
	decodeBody(t, response, &updated)
	if updated.StartMin != 480 || updated.EndMin != 660 {
		t.Fatalf("unexpected updated interval %d-%d", updated.StartMin, updated.EndMin)
	}

	expectStatus(t, doJSON(t, world.app, http.MethodPatch, "/api/shifts/"+morning.ID, token, map[string]any{"endMin": 780}), http.StatusConflict)
	expectStatus(t, doJSON(t, world.app, http.MethodPatch, "/api/shifts/unknown", token, map[string]any{"endMin": 780}), http.StatusNotFound)
}

func TestSupervisorCannotMoveShiftOutOfGrantedSite(t *testing.T) {
	world := newTestWorld(t)
	admin := loginToken(t, world.app, world.admin.Email)
	supervisor := loginToken(t, world.app, world.supervisor.Email)

	shift := createShiftViaAPI(t, world.app, admin, map[string]any{
		"userId": world.employee.ID, "siteId": world.granted.ID, "dayOfWeek": 4, "startMin": 480, "endMin": 600,
	})
	expectStatus(t, doJSON(t, world.app, http.MethodPatch, "/api/shifts/"+shift.ID, supervisor,
		map[string]any{"siteId": world.ungranted.ID}), http.StatusForbidden)

	foreign := createShiftViaAPI(t, world.app, admin, map[string]any{
		"userId": world.other.ID, "siteId": world.ungranted.ID, "dayOfWeek": 4, "startMin": 480, "endMin": 600,
	})
	expectStatus(t, doJSON(t, world.app, http.MethodDelete, "/api/shifts/"+foreign.ID, supervisor, nil), http.StatusForbidden)
}

func TestSupervisorGainsUpdateAndDeleteAfterGrant(t *testing.T) {
	world := newTestWorld(t)
	admin := loginToken(t, world.app, world.admin.Email)
	supervisor := loginToken(t, world.app, world.supervisor.Email)

	shift := createShiftViaAPI(t, world.app, admin, map[string]any{
		"userId": world.other.ID, "siteId": world.ungranted.ID, "dayOfWeek": 2, "startMin": 480, "endMin": 600,
	})
	shiftPath := "/api/shifts/" + shift.ID

	expectStatus(t, doJSON(t, world.app, http.MethodPatch, shiftPath, supervisor, map[string]any{"endMin": 660}), http.StatusForbidden)
	expectStatus(t, doJSON(t, world.app, http.MethodDelete, shiftPath, supervisor, nil), http.StatusForbidden)

	expectStatus(t, doJSON(t, world.app, http.MethodPost, "/api/access", admin, map[string]any{
		"userId": world.supervisor.ID, "siteId": world.ungranted.ID,
	}), http.StatusCreated)

	response := doJSON(t, world.app, http.MethodPatch, shiftPath, supervisor, map[string]any{"endMin": 660})
	var updated models.Shift
	decodeBody(t, response, &updated)
	response.Body.Close()
	if response.StatusCode != http.StatusOK || updated.EndMin != 660 {
		t.Fatalf("expected 200 with end 660 after grant, got %d end=%d", response.StatusCode, updated.EndMin)
	}

	expectStatus(t, doJSON(t, world.app, http.MethodDelete, shiftPath, supervisor, nil), http.StatusOK)
	var count int64
	world.database.Model(&models.Shift{}).Where("id = ?", shift.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected shift deleted, %d rows remain", count)
	}
}

func TestConfirmShiftOwnOnlyAndIdempotent(t *testing.T) {
	world := newTestWorld(t)
	admin := loginToken(t, world.app, world.admin.Email)
	employee := loginToken(t, world.app, world.employee.Email)
	other := loginToken(t, world.app, world.other.Email)

	shift := createShiftViaAPI(t, world.app, admin, map[string]any{
		"userId": world.employee.ID, "siteId": world.granted.ID, "dayOfWeek": 5, "startMin": 480, "endMin": 600,
	})

	expectStatus(t, doJSON(t, world.app, http.MethodPatch, "/api/shifts/"+shift.ID+"/confirm", other, nil), http.StatusForbidden)
	expectStatus(t, doJSON(t, world.app, http.MethodPatch, "/api/shifts/"+shift.ID+"/confirm", admin, nil), http.StatusForbidden)

	for attempt := 0; attempt < 2; attempt++ {
		response := doJSON(t, world.app, http.MethodPatch, "/api/shifts/"+shift.ID+"/confirm", employee, nil)
		var confirmed models.Shift
		decodeBody(t, response, &confirmed)
		response.Body.Close()
		if response.StatusCode != http.StatusOK || confirmed.Status != models.ShiftConfirmed {
			t.Fatalf("attempt %d: expected CONFIRMED with 200, got %d %q", attempt, response.StatusCode, confirmed.Status)
		}
	}
}

func TestDeleteShiftPublishesEventAndFreesSlot(t *testing.T) {
	world := newTestWorld(t)
	token := loginToken(t, world.app, world.admin.Email)

	shift := createShiftViaAPI(t, world.app, token, map[string]any{
		"userId": world.employee.ID, "siteId": world.granted.ID, "dayOfWeek": 6, "startMin": 480, "endMin": 600,
	})
	expectStatus(t, doJSON(t, world.app, http.MethodDelete, "/api/shifts/"+shift.ID, token, nil), http.StatusOK)
	expectStatus(t, doJSON(t, world.app, http.MethodDelete, "/api/shifts/"+shift.ID, token, nil), http.StatusNotFound)

	last := world.events.events[len(world.events.events)-1]
	if last.Type != services.ShiftDeleted || last.Shift.ID != shift.ID {
		t.Fatalf("expected delete event for %s, got %s %s", shift.ID, last.Type, last.Shift.ID)
	}

	createShiftViaAPI(t, world.app, token, map[string]any{
		"userId": world.employee.ID, "siteId": world.granted.ID, "dayOfWeek": 6, "startMin": 500, "endMin": 560,
	})
}
