// Package period maps reference dates to the boundaries of their containing
// tracking period (day, Monday-start week, or calendar month). All functions
// are pure: identical inputs always yield identical outputs, which is what
// lets the streak calculator invoke them repeatedly for synthetic dates.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitforge/habitforge/internal/models"
)

// ErrInvalidGoalType is returned when a goal type outside
// {daily, weekly, monthly} reaches a period calculation.
var ErrInvalidGoalType = errors.New("invalid goal type")

// DateOf normalizes a timestamp to its calendar date at midnight UTC.
// Period arithmetic operates on day granularity only.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a normalized calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Bounds returns the inclusive [start, end] of the period containing ref.
//
// Daily periods are the single day. Weekly periods run Monday through Sunday.
// Monthly periods run from the first to the last calendar day of the month;
// time.AddDate handles 28/29/30/31-day months and leap years.
func Bounds(goalType models.GoalType, ref time.Time) (time.Time, time.Time, error) {
	d := DateOf(ref)

	switch goalType {
	case models.GoalDaily:
		return d, d, nil

	case models.GoalWeekly:
		start := d.AddDate(0, 0, -daysSinceMonday(d))
		return start, start.AddDate(0, 0, 6), nil

	case models.GoalMonthly:
		start := Date(d.Year(), d.Month(), 1)
		end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
		return start, end, nil

	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidGoalType, goalType)
	}
}

// Previous returns the bounds of the period immediately before the period
// starting at start.
func Previous(start time.Time, goalType models.GoalType) (time.Time, time.Time, error) {
	return Bounds(goalType, DateOf(start).AddDate(0, 0, -1))
}

// Next returns the bounds of the period immediately after the period
// containing ref. ref may be any date inside the current period.
func Next(ref time.Time, goalType models.GoalType) (time.Time, time.Time, error) {
	_, end, err := Bounds(goalType, ref)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return Bounds(goalType, end.AddDate(0, 0, 1))
}

// Contains reports whether d falls within [start, end].
func Contains(start, end, d time.Time) bool {
	day := DateOf(d)
	return !day.Before(DateOf(start)) && !day.After(DateOf(end))
}

// IsCurrent reports whether today falls within [start, end], i.e. the period
// is still open.
func IsCurrent(start, end, today time.Time) bool {
	return Contains(start, end, today)
}

// DaysIn returns the number of days in the period containing ref.
func DaysIn(goalType models.GoalType, ref time.Time) (int, error) {
	start, end, err := Bounds(goalType, ref)
	if err != nil {
		return 0, err
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// Label formats a human-readable label for the period containing ref.
func Label(goalType models.GoalType, ref time.Time) (string, error) {
	d := DateOf(ref)

	switch goalType {
	case models.GoalDaily:
		return d.Format("Monday, Jan 02"), nil
	case models.GoalWeekly:
		start, end, err := Bounds(goalType, d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Week of %s - %s", start.Format("Jan 02"), end.Format("Jan 02")), nil
	case models.GoalMonthly:
		return d.Format("January 2006"), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGoalType, goalType)
	}
}

// daysSinceMonday returns the weekday offset with Monday as day 0.
func daysSinceMonday(d time.Time) int {
	// time.Weekday has Sunday as 0.
	return (int(d.Weekday()) + 6) % 7
}
