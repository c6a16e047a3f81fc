package seed

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/shiftdesk/internal/db"
	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Summary struct {
	UsersCreated  int
	UsersKept     int
	SitesCreated  int
	SitesKept     int
	Grants        int
	ShiftsCreated int
	ShiftsKept    int
	Emails        map[string]string
}

// Apply loads fixture into database. Existing users and sites matched by email
// or name are left untouched, so running it twice changes nothing.
func Apply(database *gorm.DB, fixture Fixture) (Summary, error) {
	summary := Summary{Emails: map[string]string{}}

	err := database.Transaction(func(tx *gorm.DB) error {
		repos := db.NewRepositories(tx)

		userIDs := make(map[string]string, len(fixture.Users))
		for _, entry := range fixture.Users {
			user, created, err := ensureUser(repos.Users, entry)
			if err != nil {
				return err
			}
			if created {
				summary.UsersCreated++
			} else {
				summary.UsersKept++
			}
			userIDs[entry.Key] = user.ID
			summary.Emails[user.Role] = user.Email
		}

		siteIDs := make(map[string]string, len(fixture.Sites))
		for _, entry := range fixture.Sites {
			site, created, err := ensureSite(repos.Sites, entry)
			if err != nil {
				return err
			}
			if created {
				summary.SitesCreated++
			} else {
				summary.SitesKept++
			}
			siteIDs[entry.Key] = site.ID
		}

		for _, entry := range fixture.Grants {
			if _, err := repos.SiteAccess.Grant(userIDs[entry.User], siteIDs[entry.Site]); err != nil {
				return fmt.Errorf("seed: grant %s on %s: %w", entry.User, entry.Site, err)
			}
			summary.Grants++
		}

		for _, entry := range fixture.Shifts {
			created, err := ensureShift(repos.Shifts, userIDs[entry.User], siteIDs[entry.Site], entry)
			if err != nil {
				return err
			}
			if created {
				summary.ShiftsCreated++
			} else {
				summary.ShiftsKept++
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func ensureUser(users *db.UserRepository, entry UserFixture) (models.User, bool, error) {
	existing, err := users.FindByNormalizedEmail(entry.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, fmt.Errorf("seed: lookup user %s: %w", entry.Email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, false, fmt.Errorf("seed: hash password for %s: %w", entry.Email, err)
	}
	user := models.User{
		Name:           entry.Name,
		Email:          entry.Email,
		Phone:          entry.Phone,
		PasswordHash:   string(hash),
		Role:           entry.Role,
		Active:         !entry.Inactive,
		EmploymentType: entry.EmploymentType,
		HourlyRate:     entry.HourlyRate,
	}
	if err := users.Create(&user); err != nil {
		return models.User{}, false, fmt.Errorf("seed: create user %s: %w", entry.Email, err)
	}
	return user, true, nil
}

func ensureSite(sites *db.SiteRepository, entry SiteFixture) (models.Site, bool, error) {
	existing, err := sites.FindByName(entry.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Site{}, false, fmt.Errorf("seed: lookup site %s: %w", entry.Name, err)
	}

	site := models.Site{
		Name:               entry.Name,
		City:               entry.City,
		Frequency:          entry.Frequency,
		DefaultDurationMin: entry.DefaultDurationMin,
		Notes:              entry.Notes,
	}
	if err := sites.Create(&site); err != nil {
		return models.Site{}, false, fmt.Errorf("seed: create site %s: %w", entry.Name, err)
	}
	return site, true, nil
}

// ensureShift skips an identical slot and otherwise goes through the same
// conflict check as the API.
func ensureShift(shifts *db.ShiftRepository, userID string, siteID string, entry ShiftFixture) (bool, error) {
	start, end := entry.Minutes()
	siblings, err := shifts.FindByEmployeeDay(userID, entry.Day, "")
	if err != nil {
		return false, fmt.Errorf("seed: load shifts: %w", err)
	}
	for _, sibling := range siblings {
		if sibling.SiteID == siteID && sibling.StartMin == start && sibling.EndMin == end {
			return false, nil
		}
	}

	shift := models.Shift{
		UserID:    userID,
		SiteID:    siteID,
		DayOfWeek: entry.Day,
		StartMin:  start,
		EndMin:    end,
		Status:    entry.Status,
		Checklist: entry.Checklist,
	}
	slot := services.SlotFromShift(shift)
	if err := shifts.CreateChecked(&shift, func(siblings []models.Shift) error {
		return services.CheckShiftConflict(slot, siblings)
	}); err != nil {
		return false, fmt.Errorf("seed: shift day %d %s-%s: %w", entry.Day, entry.Start, entry.End, err)
	}
	return true, nil
}
