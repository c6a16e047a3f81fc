package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/shiftdesk/internal/db"
	"github.com/terraincognita07/shiftdesk/internal/seed"
)

func RunSeedCommand(dbPath string, out io.Writer) error {
	fixture, err := seed.DefaultFixture()
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	summary, err := seed.Apply(database, fixture)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Seed OK: users %d new / %d kept, sites %d new / %d kept, shifts %d new / %d kept\n",
		summary.UsersCreated, summary.UsersKept,
		summary.SitesCreated, summary.SitesKept,
		summary.ShiftsCreated, summary.ShiftsKept)
	for _, role := range []string{"ADMIN", "SUPERVISOR", "EMPLOYEE"} {
		if email, ok := summary.Emails[role]; ok {
			fmt.Fprintf(out, "  %-10s %s\n", role, email)
		}
	}
	return nil
}
