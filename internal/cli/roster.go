package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/terraincognita07/shiftdesk/internal/db"
	"github.com/terraincognita07/shiftdesk/internal/i18n"
	"github.com/terraincognita07/shiftdesk/internal/models"
	"github.com/terraincognita07/shiftdesk/internal/services"
)

var (
	rosterTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#5B8DEF"))
	rosterDayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
	rosterBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	rosterBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// RunRosterCommand prints the recurring week as seen by an administrator.
func RunRosterCommand(dbPath string, language string, out io.Writer) error {
	messages, err := i18n.NewManager(language)
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	shifts, err := db.NewShiftRepository(database).ListAll()
	if err != nil {
		return fmt.Errorf("load shifts: %w", err)
	}

	fmt.Fprintln(out, RenderRoster(shifts, messages, language))
	return nil
}

// RenderRoster lays shifts out by weekday. shifts must be ordered by day then start.
func RenderRoster(shifts []models.Shift, messages *i18n.Manager, language string) string {
	title := rosterTitleStyle.Render(messages.Translate(language, "roster.title"))
	if len(shifts) == 0 {
		empty := rosterBodyStyle.Render(messages.Translate(language, "roster.empty"))
		return lipgloss.JoinVertical(lipgloss.Left, title, empty)
	}

	blocks := []string{title}
	for day := models.Monday; day <= models.Sunday; day++ {
		lines := make([]string, 0)
		for _, shift := range shifts {
			if shift.DayOfWeek == day {
				lines = append(lines, rosterLine(shift))
			}
		}
		if len(lines) == 0 {
			continue
		}
		header := rosterDayStyle.Render(strings.ToUpper(messages.DayName(language, day)))
		body := rosterBodyStyle.Render(strings.Join(lines, "\n"))
		blocks = append(blocks, rosterBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func rosterLine(shift models.Shift) string {
	employee := shift.UserID
	if shift.User != nil {
		employee = shift.User.Name
	}
	site := shift.SiteID
	if shift.Site != nil {
		site = shift.Site.Name
	}
	return fmt.Sprintf("%s-%s  %-20s  %s  [%s]",
		services.FormatMinuteOfDay(shift.StartMin),
		services.FormatMinuteOfDay(shift.EndMin),
		employee, site, shift.Status)
}
