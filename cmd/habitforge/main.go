package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/habitforge/habitforge/internal/cli"
	"github.com/habitforge/habitforge/internal/cli/backups"
	"github.com/habitforge/habitforge/internal/cli/completions"
	"github.com/habitforge/habitforge/internal/cli/data"
	"github.com/habitforge/habitforge/internal/cli/habits"
	"github.com/habitforge/habitforge/internal/cli/stats"
	"github.com/habitforge/habitforge/internal/cli/system"
	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/errors"
	"github.com/habitforge/habitforge/internal/logger"
	"github.com/habitforge/habitforge/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"string" default:"~/.config/habitforge/habitforge.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitforge storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Habit   habits.HabitCmd   `cmd:"" help:"Manage habits."`
	Log     completions.LogCmd   `cmd:"" help:"Log a completion for a habit."`
	Undo    completions.UndoCmd  `cmd:"" help:"Remove a logged completion."`
	Today   completions.TodayCmd `cmd:"" help:"Show today's progress for all habits." default:"1"`
	Streak  stats.StreakCmd      `cmd:"" help:"Show current streaks."`
	Heatmap stats.HeatmapCmd     `cmd:"" help:"Show a completion heatmap."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Export data.ExportCmd `cmd:"" help:"Export all data to a CSV archive."`
	Import data.ImportCmd `cmd:"" help:"Import data from a CSV archive."`
	Wipe   data.WipeCmd   `cmd:"" help:"Delete all data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks and heatmaps"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	dbPath := expandHome(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(dbPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := sqlite.NewStore(dbPath)
	appCtx := &cli.Context{Store: store}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
