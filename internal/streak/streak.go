// Package streak computes consecutive-success streaks by walking backward
// through tracking periods from today.
package streak

import (
	"time"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/period"
	"github.com/habitforge/habitforge/internal/progress"
)

// Calculate returns the number of consecutive periods immediately preceding
// the current one in which the habit's goal was met.
//
// The current (in-progress) period is always excluded: it is still open and
// could yet be caught up or fail, so it must not contribute to a finalized
// streak. The walk steps backward one period at a time and stops at the first
// period whose goal was not met. Periods that end before the habit existed
// are treated as non-existent rather than failed, so the scan simply stops
// there. Missing completions are a failed period, never an error.
func Calculate(habit models.Habit, completions []models.Completion, today time.Time) (int, error) {
	if len(completions) == 0 {
		return 0, nil
	}

	createdDay := period.DateOf(habit.CreatedAt)

	start, _, err := period.Bounds(habit.GoalType, today)
	if err != nil {
		return 0, err
	}

	streak := 0
	for i := 0; i < maxLookback(habit.GoalType); i++ {
		prevStart, prevEnd, err := period.Previous(start, habit.GoalType)
		if err != nil {
			return 0, err
		}

		// The habit did not exist in this period; earlier periods cannot
		// extend the streak either.
		if prevEnd.Before(createdDay) {
			break
		}

		result, err := progress.Evaluate(habit, prevStart, prevEnd, completions)
		if err != nil {
			return 0, err
		}
		if !result.GoalMet {
			break
		}

		streak++
		start = prevStart
	}

	return streak, nil
}

// maxLookback bounds the backward scan to roughly ten years of periods so
// pathological data can never produce an unbounded walk.
func maxLookback(goalType models.GoalType) int {
	switch goalType {
	case models.GoalWeekly:
		return constants.MaxWeeklyLookback
	case models.GoalMonthly:
		return constants.MaxMonthlyLookback
	default:
		return constants.MaxDailyLookback
	}
}
