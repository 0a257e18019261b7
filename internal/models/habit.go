package models

import (
	"fmt"
	"time"
)

// GoalType is the granularity of a habit's tracking period.
type GoalType string

const (
	GoalDaily   GoalType = "daily"
	GoalWeekly  GoalType = "weekly"
	GoalMonthly GoalType = "monthly"
)

// ParseGoalType converts a string into a GoalType.
func ParseGoalType(s string) (GoalType, error) {
	switch GoalType(s) {
	case GoalDaily, GoalWeekly, GoalMonthly:
		return GoalType(s), nil
	default:
		return "", fmt.Errorf("invalid goal type %q (expected daily, weekly, or monthly)", s)
	}
}

// Valid reports whether the goal type is one of the known values.
func (g GoalType) Valid() bool {
	switch g {
	case GoalDaily, GoalWeekly, GoalMonthly:
		return true
	}
	return false
}

// Habit is a tracked habit with a per-period completion goal.
type Habit struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // #RRGGBB
	GoalType  GoalType  `json:"goal_type"`
	GoalCount int       `json:"goal_count"` // target completions per period, 1-100
	CreatedAt time.Time `json:"created_at"`
	Archived  bool      `json:"archived"`
}

// Completion records how many times a habit was performed on a calendar date.
// There is at most one Completion per (habit, date) pair; repeated logs on the
// same day accumulate into Count.
type Completion struct {
	ID          int64     `json:"id"`
	HabitID     int64     `json:"habit_id"`
	Date        time.Time `json:"date"` // day granularity, midnight UTC
	Count       int       `json:"count"`
	CompletedAt time.Time `json:"completed_at"`
}
