package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/services"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultFixture []byte

type Fixture struct {
	Users  []UserFixture  `yaml:"users"`
	Sites  []SiteFixture  `yaml:"sites"`
	Grants []GrantFixture `yaml:"grants"`
	Shifts []ShiftFixture `yaml:"shifts"`
}

type UserFixture struct {
	Key            string `yaml:"key"`
	Role           string `yaml:"role"`
	Name           string `yaml:"name"`
	Email          string `yaml:"email"`
	Phone          string `yaml:"phone"`
	Password       string `yaml:"password"`
	EmploymentType string `yaml:"employmentType"`
	HourlyRate     int    `yaml:"hourlyRate"`
	Inactive       bool   `yaml:"inactive"`
}

type SiteFixture struct {
	Key                string `yaml:"key"`
	Name               string `yaml:"name"`
	City               string `yaml:"city"`
	Frequency          string `yaml:"frequency"`
	DefaultDurationMin int    `yaml:"defaultDurationMin"`
	Notes              string `yaml:"notes"`
}

type GrantFixture struct {
	User string `yaml:"user"`
	Site string `yaml:"site"`
}

type ShiftFixture struct {
	User      string `yaml:"user"`
	Site      string `yaml:"site"`
	Day       int    `yaml:"day"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Status    string `yaml:"status"`
	Checklist string `yaml:"checklist"`

	startMin int
	endMin   int
}

func (shift ShiftFixture) Minutes() (int, int) {
	return shift.startMin, shift.endMin
}

// DefaultFixture is the demo data set compiled into the binary.
func DefaultFixture() (Fixture, error) {
	return ParseFixtureYAML(defaultFixture)
}

func ParseFixtureYAML(data []byte) (Fixture, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Fixture{}, fmt.Errorf("seed: fixture payload is empty")
	}
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return Fixture{}, fmt.Errorf("seed: decode fixture: %w", err)
	}
	return fixture.Normalized()
}

// Normalized validates references and resolves clock times to minutes.
func (fixture Fixture) Normalized() (Fixture, error) {
	users := make(map[string]bool, len(fixture.Users))
	for index, user := range fixture.Users {
		user.Key = strings.TrimSpace(user.Key)
		user.Email = services.NormalizeAuthEmail(user.Email)
		user.Role = strings.ToUpper(strings.TrimSpace(user.Role))
		if user.Key == "" || users[user.Key] {
			return Fixture{}, fmt.Errorf("seed: user %d: missing or duplicate key %q", index, user.Key)
		}
		if user.Email == "" {
			return Fixture{}, fmt.Errorf("seed: user %s: invalid email", user.Key)
		}
		if !models.IsKnownRole(user.Role) {
			return Fixture{}, fmt.Errorf("seed: user %s: unknown role %q", user.Key, user.Role)
		}
		if err := services.ValidatePasswordStrength(user.Password); err != nil {
			return Fixture{}, fmt.Errorf("seed: user %s: %w", user.Key, err)
		}
		users[user.Key] = true
		fixture.Users[index] = user
	}

	sites := make(map[string]bool, len(fixture.Sites))
	for index, site := range fixture.Sites {
		site.Key = strings.TrimSpace(site.Key)
		site.Name = strings.TrimSpace(site.Name)
		if site.Key == "" || sites[site.Key] || site.Name == "" {
			return Fixture{}, fmt.Errorf("seed: site %d: missing name or duplicate key %q", index, site.Key)
		}
		sites[site.Key] = true
		fixture.Sites[index] = site
	}

	for index, grant := range fixture.Grants {
		if !users[grant.User] || !sites[grant.Site] {
			return Fixture{}, fmt.Errorf("seed: grant %d: unknown user %q or site %q", index, grant.User, grant.Site)
		}
	}

	for index, shift := range fixture.Shifts {
		if !users[shift.User] || !sites[shift.Site] {
			return Fixture{}, fmt.Errorf("seed: shift %d: unknown user %q or site %q", index, shift.User, shift.Site)
		}
		if err := services.ValidateDayOfWeek(shift.Day); err != nil {
			return Fixture{}, fmt.Errorf("seed: shift %d: %w", index, err)
		}
		start, err := ParseClock(shift.Start)
		if err != nil {
			return Fixture{}, fmt.Errorf("seed: shift %d: %w", index, err)
		}
		end, err := ParseClock(shift.End)
		if err != nil {
			return Fixture{}, fmt.Errorf("seed: shift %d: %w", index, err)
		}
		if _, err := services.NewInterval(start, end); err != nil {
			return Fixture{}, fmt.Errorf("seed: shift %d: %w", index, err)
		}
		shift.Status = strings.ToUpper(strings.TrimSpace(shift.Status))
		if shift.Status == "" {
			shift.Status = models.ShiftPlanned
		}
		if !models.IsKnownShiftStatus(shift.Status) {
			return Fixture{}, fmt.Errorf("seed: shift %d: unknown status %q", index, shift.Status)
		}
		shift.startMin = start
		shift.endMin = end
		fixture.Shifts[index] = shift
	}
	return fixture, nil
}

// ParseClock turns "HH:MM" into minutes after midnight. "24:00" is accepted.
func ParseClock(raw string) (int, error) {
	hours, minutes, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q", raw)
	}
	hour, err := strconv.Atoi(hours)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", raw)
	}
	minute, err := strconv.Atoi(minutes)
	if err != nil || len(minutes) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", raw)
	}
	total := hour*60 + minute
	if hour < 0 || minute < 0 || minute > 59 || total > models.MinutesPerDay {
		return 0, fmt.Errorf("invalid clock time %q", raw)
	}
	return total, nil
}
