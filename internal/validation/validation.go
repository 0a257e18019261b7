// Package validation checks habit and completion fields before they reach
// storage. Database constraints back up every rule here; validation exists to
// give the user a readable message instead of a constraint violation.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/period"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Name validates and trims a habit name.
func Name(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("habit name cannot be empty")
	}
	if len(name) > constants.MaxNameLength {
		return "", fmt.Errorf("habit name must be %d characters or less", constants.MaxNameLength)
	}
	return name, nil
}

// Color validates a hex color code.
func Color(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("color must be a hex color code (#RRGGBB), got %q", color)
	}
	return nil
}

// GoalCount validates the per-period target.
func GoalCount(count int) error {
	if count < constants.MinGoalCount || count > constants.MaxGoalCount {
		return fmt.Errorf("goal count must be between %d and %d, got %d",
			constants.MinGoalCount, constants.MaxGoalCount, count)
	}
	return nil
}

// CompletionDate rejects future dates; completions record what already
// happened.
func CompletionDate(d, today time.Time) error {
	if period.DateOf(d).After(period.DateOf(today)) {
		return fmt.Errorf("completion date %s is in the future", d.Format(constants.DateFormat))
	}
	return nil
}

// CompletionAmount validates a log/undo increment.
func CompletionAmount(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("completion amount must be positive, got %d", amount)
	}
	return nil
}

// Habit validates all user-supplied habit fields at once, returning a
// field-name to message map. An empty map means the habit is valid.
func Habit(h models.Habit) map[string]string {
	errs := make(map[string]string)

	if _, err := Name(h.Name); err != nil {
		errs["name"] = err.Error()
	}
	if err := Color(h.Color); err != nil {
		errs["color"] = err.Error()
	}
	if !h.GoalType.Valid() {
		errs["goal_type"] = fmt.Sprintf("goal type must be daily, weekly, or monthly, got %q", h.GoalType)
	}
	if err := GoalCount(h.GoalCount); err != nil {
		errs["goal_count"] = err.Error()
	}

	return errs
}
