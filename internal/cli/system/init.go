// Package system implements setup and maintenance commands.
package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/habitforge/habitforge/internal/cli"
	"github.com/habitforge/habitforge/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Existing database file to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitforge storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore := sqlite.NewStore(sourcePath)
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating habits...")
	habits, err := sourceStore.GetAllHabits(true)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}

	migrated := 0
	for _, habit := range habits {
		created, err := ctx.Store.CreateHabit(habit)
		if err != nil {
			return fmt.Errorf("failed to add habit %q: %w", habit.Name, err)
		}

		completions, err := sourceStore.GetCompletionsForHabit(habit.ID,
			habit.CreatedAt.AddDate(-10, 0, 0), habit.CreatedAt.AddDate(10, 0, 0))
		if err != nil {
			return fmt.Errorf("failed to get completions for habit %q: %w", habit.Name, err)
		}
		for _, completion := range completions {
			if _, err := ctx.Store.IncrementCompletion(created.ID, completion.Date, completion.Count); err != nil {
				return fmt.Errorf("failed to add completion for habit %q on %s: %w",
					habit.Name, completion.Date.Format("2006-01-02"), err)
			}
			migrated++
		}
	}
	fmt.Printf("    Migrated %d habits and %d completions\n", len(habits), migrated)

	return nil
}
