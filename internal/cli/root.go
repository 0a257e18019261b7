package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/habitforge/habitforge/internal/backup"
	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/logger"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/period"
	"github.com/habitforge/habitforge/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.Create()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveHabit looks a habit up by numeric ID first, then by name.
func ResolveHabit(store storage.Provider, ref string) (models.Habit, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		habit, err := store.GetHabit(id)
		if err == nil {
			return habit, nil
		}
	}

	habit, err := store.GetHabitByName(ref)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %q not found", ref)
	}
	return habit, nil
}

// ParseDate parses a YYYY-MM-DD argument, defaulting to today when empty.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return period.DateOf(time.Now()), nil
	}
	d, err := time.ParseInLocation(constants.DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// Swatch renders a colored block for a habit's color.
func Swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

// ProgressBar renders a fixed-width bar for a 0-100 percentage, tinted
// with the habit's color.
func ProgressBar(pct int, color string, width int) string {
	if width <= 0 {
		width = 20
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(bar)
}

// FormatGoal renders a habit's cadence for listings, e.g. "3x daily".
func FormatGoal(h models.Habit) string {
	return fmt.Sprintf("%dx %s", h.GoalCount, h.GoalType)
}
