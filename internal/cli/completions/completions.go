// Package completions implements logging commands: log, undo, and today.
package completions

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitforge/habitforge/internal/cli"
	"github.com/habitforge/habitforge/internal/period"
	"github.com/habitforge/habitforge/internal/progress"
	"github.com/habitforge/habitforge/internal/storage"
	"github.com/habitforge/habitforge/internal/streak"
	"github.com/habitforge/habitforge/internal/validation"
)

type LogCmd struct {
	Habit  string `arg:"" help:"Habit ID or name."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Amount int    `help:"How many completions to log." default:"1"`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}
	if habit.Archived {
		return fmt.Errorf("habit %q is archived, unarchive it before logging", habit.Name)
	}

	day, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}
	today := time.Now()
	if err := validation.CompletionDate(day, today); err != nil {
		return err
	}
	if err := validation.CompletionAmount(c.Amount); err != nil {
		return err
	}

	completion, err := ctx.Store.IncrementCompletion(habit.ID, day, c.Amount)
	if err != nil {
		return err
	}

	result, err := currentProgress(ctx, habit.ID, today)
	if err != nil {
		return err
	}

	fmt.Printf("%s Logged %s: %d on %s\n", cli.Swatch(habit.Color), habit.Name,
		completion.Count, completion.Date.Format("2006-01-02"))
	fmt.Printf("  Period progress: %d/%d (%.0f%%)",
		result.CurrentCount, result.GoalCount, result.Percentage())
	if result.GoalMet {
		fmt.Print("  ✓ goal met")
	}
	fmt.Println()

	return nil
}

type UndoCmd struct {
	Habit  string `arg:"" help:"Habit ID or name."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Amount int    `help:"How many completions to remove." default:"1"`
}

func (c *UndoCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	day, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if err := validation.CompletionAmount(c.Amount); err != nil {
		return err
	}

	completion, err := ctx.Store.DecrementCompletion(habit.ID, day, c.Amount)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("nothing logged for %s on %s", habit.Name, day.Format("2006-01-02"))
		}
		return err
	}

	fmt.Printf("Removed from %s: now %d on %s\n", habit.Name,
		completion.Count, day.Format("2006-01-02"))
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'habitforge habit add'.")
		return nil
	}

	today := time.Now()
	fmt.Printf("Today, %s\n\n", today.Format("Monday, Jan 02"))

	for _, habit := range habits {
		result, err := currentProgress(ctx, habit.ID, today)
		if err != nil {
			return err
		}

		completions, err := ctx.Store.GetCompletionsForHabit(habit.ID, habit.CreatedAt.AddDate(0, 0, -1), today)
		if err != nil {
			return err
		}
		count, err := streak.Calculate(habit, completions, today)
		if err != nil {
			return err
		}

		marker := " "
		if result.GoalMet {
			marker = "✓"
		}
		streakNote := ""
		if count > 0 {
			streakNote = fmt.Sprintf("  🔥 %d", count)
		}

		fmt.Printf("%s %s %-30s %s %d/%d%s\n",
			marker, cli.Swatch(habit.Color), habit.Name,
			cli.ProgressBar(int(result.Percentage()), habit.Color, 20),
			result.CurrentCount, result.GoalCount, streakNote)
	}

	return nil
}

func currentProgress(ctx *cli.Context, habitID int64, now time.Time) (progress.Result, error) {
	habit, err := ctx.Store.GetHabit(habitID)
	if err != nil {
		return progress.Result{}, err
	}

	start, end, err := period.Bounds(habit.GoalType, now)
	if err != nil {
		return progress.Result{}, err
	}

	completions, err := ctx.Store.GetCompletionsForHabit(habit.ID, start, end)
	if err != nil {
		return progress.Result{}, err
	}

	return progress.Evaluate(habit, start, end, completions)
}
