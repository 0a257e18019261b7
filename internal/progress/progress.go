// Package progress aggregates raw completion records into period-level
// progress toward a habit's goal.
package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/period"
)

// ErrInvalidHabitConfiguration is returned when a habit's goal count is not
// positive. Schema constraints should make this unreachable; it is surfaced
// rather than defaulted so data corruption is never masked.
var ErrInvalidHabitConfiguration = errors.New("invalid habit configuration")

// Result is the evaluated progress of a habit within a single period.
type Result struct {
	CurrentCount int
	GoalCount    int
	Ratio        float64 // CurrentCount / GoalCount, not capped
	GoalMet      bool
	Remaining    int // completions still needed, 0 once the goal is met
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

// Percentage returns the display percentage, capped at 100.
func (r Result) Percentage() float64 {
	pct := r.Ratio * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Evaluate sums the completions that fall within [start, end] and compares
// the total against the habit's goal count. The caller supplies the
// completions; this function never queries storage.
func Evaluate(habit models.Habit, start, end time.Time, completions []models.Completion) (Result, error) {
	if habit.GoalCount <= 0 {
		return Result{}, fmt.Errorf("%w: habit %d has goal count %d", ErrInvalidHabitConfiguration, habit.ID, habit.GoalCount)
	}

	current := 0
	for _, c := range completions {
		if period.Contains(start, end, c.Date) {
			current += c.Count
		}
	}

	remaining := habit.GoalCount - current
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		CurrentCount: current,
		GoalCount:    habit.GoalCount,
		Ratio:        float64(current) / float64(habit.GoalCount),
		GoalMet:      current >= habit.GoalCount,
		Remaining:    remaining,
		PeriodStart:  period.DateOf(start),
		PeriodEnd:    period.DateOf(end),
	}, nil
}

// EvaluateAt evaluates progress for the period containing ref.
func EvaluateAt(habit models.Habit, ref time.Time, completions []models.Completion) (Result, error) {
	start, end, err := period.Bounds(habit.GoalType, ref)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(habit, start, end, completions)
}
