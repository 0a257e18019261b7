// Package habits implements the habit management subcommands.
package habits

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitforge/internal/cli"
	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/storage"
	"github.com/habitforge/habitforge/internal/streak"
	"github.com/habitforge/habitforge/internal/validation"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit (hide it without losing history)."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Bring an archived habit back."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Permanently delete a habit and its history."`
}

type HabitAddCmd struct {
	Name      string `arg:"" optional:"" help:"Habit name. Omit to fill in interactively."`
	Color     string `help:"Hex color like #64B5F6." default:""`
	GoalType  string `help:"Goal cadence: daily, weekly, or monthly." default:"daily"`
	GoalCount int    `help:"Completions needed per period (1-100)." default:"1"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Name == "" {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	name, err := validation.Name(c.Name)
	if err != nil {
		return err
	}

	if c.Color == "" {
		c.Color = constants.DefaultHabitColor
	}
	if err := validation.Color(c.Color); err != nil {
		return err
	}

	goalType, err := models.ParseGoalType(c.GoalType)
	if err != nil {
		return err
	}
	if err := validation.GoalCount(c.GoalCount); err != nil {
		return err
	}

	// Reject duplicates up front for a friendlier message than the
	// unique constraint gives
	if _, err := ctx.Store.GetHabitByName(name); err == nil {
		return fmt.Errorf("habit with name %q already exists", name)
	}

	habit, err := ctx.Store.CreateHabit(models.Habit{
		Name:      name,
		Color:     c.Color,
		GoalType:  goalType,
		GoalCount: c.GoalCount,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s Added habit #%d: %s (%s)\n", cli.Swatch(habit.Color), habit.ID, habit.Name, cli.FormatGoal(habit))
	return nil
}

func (c *HabitAddCmd) promptForm() error {
	colorOptions := make([]huh.Option[string], len(constants.HabitColors))
	for i, color := range constants.HabitColors {
		colorOptions[i] = huh.NewOption(cli.Swatch(color)+" "+color, color)
	}

	goalCount := strconv.Itoa(c.GoalCount)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&c.Name).
				Validate(func(s string) error {
					_, err := validation.Name(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions...).
				Value(&c.Color),
			huh.NewSelect[string]().
				Title("Goal").
				Options(
					huh.NewOption("Daily", string(models.GoalDaily)),
					huh.NewOption("Weekly", string(models.GoalWeekly)),
					huh.NewOption("Monthly", string(models.GoalMonthly)),
				).
				Value(&c.GoalType),
			huh.NewInput().
				Title("Times per period").
				Value(&goalCount).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("must be a number")
					}
					return validation.GoalCount(i)
				}),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return err
	}

	c.GoalCount, _ = strconv.Atoi(goalCount)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(c.Archived)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'habitforge habit add'.")
		return nil
	}

	today := time.Now()
	for _, habit := range habits {
		status := ""
		if habit.Archived {
			status = " [ARCHIVED]"
		}

		count, err := streakCount(ctx.Store, habit, today)
		if err != nil {
			return err
		}
		streakNote := ""
		if count > 0 {
			streakNote = fmt.Sprintf("  🔥 %d", count)
		}

		fmt.Printf("%s #%-3d %-30s %s%s%s\n",
			cli.Swatch(habit.Color), habit.ID, habit.Name, cli.FormatGoal(habit), streakNote, status)
	}

	return nil
}

func streakCount(store storage.Provider, habit models.Habit, today time.Time) (int, error) {
	completions, err := store.GetCompletionsForHabit(habit.ID, habit.CreatedAt.AddDate(0, 0, -1), today)
	if err != nil {
		return 0, err
	}
	return streak.Calculate(habit, completions, today)
}

type HabitEditCmd struct {
	Habit     string `arg:"" help:"Habit ID or name."`
	Name      string `help:"New name." default:""`
	Color     string `help:"New hex color." default:""`
	GoalType  string `help:"New goal cadence: daily, weekly, or monthly." default:""`
	GoalCount int    `help:"New completions per period (1-100)." default:"0"`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	changed := false
	if c.Name != "" {
		name, err := validation.Name(c.Name)
		if err != nil {
			return err
		}
		if existing, err := ctx.Store.GetHabitByName(name); err == nil && existing.ID != habit.ID {
			return fmt.Errorf("habit with name %q already exists", name)
		}
		habit.Name = name
		changed = true
	}
	if c.Color != "" {
		if err := validation.Color(c.Color); err != nil {
			return err
		}
		habit.Color = c.Color
		changed = true
	}
	if c.GoalType != "" {
		goalType, err := models.ParseGoalType(c.GoalType)
		if err != nil {
			return err
		}
		habit.GoalType = goalType
		changed = true
	}
	if c.GoalCount != 0 {
		if err := validation.GoalCount(c.GoalCount); err != nil {
			return err
		}
		habit.GoalCount = c.GoalCount
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change, pass --name, --color, --goal-type, or --goal-count")
	}

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit #%d: %s (%s)\n", habit.ID, habit.Name, cli.FormatGoal(habit))
	return nil
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Archived habit: %s (history kept, use 'habit unarchive' to bring it back)\n", habit.Name)
	return nil
}

type HabitUnarchiveCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
}

func (c *HabitUnarchiveCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Store.UnarchiveHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Unarchived habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Yes   bool   `help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	total, err := ctx.Store.CountCompletions(habit.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("⚠️  This permanently deletes %q and its %d logged completions.\n", habit.Name, total)
		fmt.Println("   Consider 'habit archive' if you only want it out of the way.")
		fmt.Print("Continue? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
