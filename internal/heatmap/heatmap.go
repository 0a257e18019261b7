// Package heatmap produces date-indexed completion percentages for
// calendar-style visualization. It owns the data model only; rendering is the
// presentation layer's job.
package heatmap

import (
	"fmt"
	"math"
	"time"

	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/period"
	"github.com/habitforge/habitforge/internal/progress"
)

// View selects the date range a heatmap covers.
type View string

const (
	ViewWeek  View = "week"
	ViewMonth View = "month"
	ViewYear  View = "year"
)

// ParseView converts a string into a View.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewWeek, ViewMonth, ViewYear:
		return View(s), nil
	default:
		return "", fmt.Errorf("invalid view %q (expected week, month, or year)", s)
	}
}

// Range returns the inclusive date range enumerated for a view around anchor.
//
// Week covers the anchor's Monday..Sunday week. Month covers the anchor's
// calendar month padded outward to whole weeks, and year covers Jan 1..Dec 31
// padded likewise, so callers always receive ranges that fold into
// seven-column rows.
func Range(view View, anchor time.Time) (time.Time, time.Time, error) {
	d := period.DateOf(anchor)

	switch view {
	case ViewWeek:
		return period.Bounds(models.GoalWeekly, d)

	case ViewMonth:
		start, end, err := period.Bounds(models.GoalMonthly, d)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return padToWeeks(start, end)

	case ViewYear:
		start := period.Date(d.Year(), time.January, 1)
		end := period.Date(d.Year(), time.December, 31)
		return padToWeeks(start, end)

	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid view %q", view)
	}
}

// padToWeeks widens [start, end] so it begins on a Monday and ends on a
// Sunday.
func padToWeeks(start, end time.Time) (time.Time, time.Time, error) {
	paddedStart, _, err := period.Bounds(models.GoalWeekly, start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	_, paddedEnd, err := period.Bounds(models.GoalWeekly, end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return paddedStart, paddedEnd, nil
}

// Generate returns a per-date completion percentage for every date in the
// view's range, capped at 100. Dates before the habit existed are omitted so
// callers can distinguish "no data" from "0% completion". The result is a
// fresh snapshot on every call; nothing is cached here.
func Generate(habit models.Habit, view View, anchor time.Time, completions []models.Completion) (map[time.Time]int, error) {
	if habit.GoalCount <= 0 {
		return nil, fmt.Errorf("%w: habit %d has goal count %d", progress.ErrInvalidHabitConfiguration, habit.ID, habit.GoalCount)
	}

	start, end, err := Range(view, anchor)
	if err != nil {
		return nil, err
	}

	counts := make(map[time.Time]int, len(completions))
	for _, c := range completions {
		counts[period.DateOf(c.Date)] += c.Count
	}

	createdDay := period.DateOf(habit.CreatedAt)
	data := make(map[time.Time]int)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Before(createdDay) {
			continue
		}
		pct := int(math.Round(float64(counts[d]) * 100 / float64(habit.GoalCount)))
		if pct > 100 {
			pct = 100
		}
		data[d] = pct
	}

	return data, nil
}

// OverallPercentage is the share of the maximum possible completions achieved
// across [start, end], capped at 100 and rounded to one decimal. Maximum
// possible is goalCount per day over the range.
func OverallPercentage(completions []models.Completion, goalCount int, start, end time.Time) float64 {
	totalDays := int(period.DateOf(end).Sub(period.DateOf(start)).Hours()/24) + 1
	maxPossible := totalDays * goalCount
	if maxPossible <= 0 {
		return 0
	}

	total := 0
	for _, c := range completions {
		if period.Contains(start, end, c.Date) {
			total += c.Count
		}
	}

	pct := float64(total) / float64(maxPossible) * 100
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*10) / 10
}
