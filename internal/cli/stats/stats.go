// Package stats implements the streak and heatmap reporting commands.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/habitforge/habitforge/internal/cli"
	"github.com/habitforge/habitforge/internal/heatmap"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/streak"
)

type StreakCmd struct {
	Habit string `arg:"" optional:"" help:"Habit ID or name. Omit for all active habits."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	today := time.Now()

	if c.Habit != "" {
		habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
		if err != nil {
			return err
		}
		count, err := habitStreak(ctx, habit.ID, today)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s: %s\n", cli.Swatch(habit.Color), habit.Name, formatStreak(count, habit.GoalType))
		return nil
	}

	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		count, err := habitStreak(ctx, habit.ID, today)
		if err != nil {
			return err
		}
		fmt.Printf("%s %-30s %s\n", cli.Swatch(habit.Color), habit.Name, formatStreak(count, habit.GoalType))
	}
	return nil
}

func habitStreak(ctx *cli.Context, habitID int64, today time.Time) (int, error) {
	habit, err := ctx.Store.GetHabit(habitID)
	if err != nil {
		return 0, err
	}
	completions, err := ctx.Store.GetCompletionsForHabit(habit.ID, habit.CreatedAt.AddDate(0, 0, -1), today)
	if err != nil {
		return 0, err
	}
	return streak.Calculate(habit, completions, today)
}

func formatStreak(count int, goalType models.GoalType) string {
	if count == 0 {
		return "no streak yet"
	}
	unit := map[models.GoalType]string{
		models.GoalDaily:   "day",
		models.GoalWeekly:  "week",
		models.GoalMonthly: "month",
	}[goalType]
	if count != 1 {
		unit += "s"
	}
	return fmt.Sprintf("🔥 %d %s", count, unit)
}

type HeatmapCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	View  string `help:"Range to show: week, month, or year." default:"month"`
	Date  string `help:"Anchor date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	view, err := heatmap.ParseView(c.View)
	if err != nil {
		return err
	}

	anchor, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}

	start, end, err := heatmap.Range(view, anchor)
	if err != nil {
		return err
	}

	completions, err := ctx.Store.GetCompletionsForHabit(habit.ID, start, end)
	if err != nil {
		return err
	}

	cells, err := heatmap.Generate(habit, view, anchor, completions)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s: %s to %s\n\n", cli.Swatch(habit.Color), habit.Name,
		start.Format("Jan 02 2006"), end.Format("Jan 02 2006"))
	fmt.Println("        Mon Tue Wed Thu Fri Sat Sun")

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(habit.Color))
	for weekStart := start; !weekStart.After(end); weekStart = weekStart.AddDate(0, 0, 7) {
		var row strings.Builder
		row.WriteString(weekStart.Format("Jan 02") + "  ")
		for i := 0; i < 7; i++ {
			day := weekStart.AddDate(0, 0, i)
			pct, tracked := cells[day]
			cell := " ·  "
			if tracked {
				cell = fmt.Sprintf(" %s  ", style.Render(intensity(pct)))
			}
			row.WriteString(cell)
		}
		fmt.Println(row.String())
	}

	overall := heatmap.OverallPercentage(completions, habit.GoalCount, start, end)
	fmt.Printf("\nOverall: %.1f%%\n", overall)

	return nil
}

// intensity maps a per-day percentage to a shaded block.
func intensity(pct int) string {
	switch {
	case pct <= 0:
		return "·"
	case pct < 34:
		return "░"
	case pct < 67:
		return "▒"
	case pct < 100:
		return "▓"
	default:
		return "█"
	}
}
