package system

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/habitforge/habitforge/internal/backup"
	"github.com/habitforge/habitforge/internal/cli"
	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/migration"
	"github.com/habitforge/habitforge/internal/storage/sqlite"
	"github.com/habitforge/habitforge/internal/validation"
	"github.com/habitforge/habitforge/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: Habit integrity (only if DB is reachable)
	if dbReachable {
		if err := checkHabitIntegrity(ctx); err != nil {
			fmt.Printf("❌ Habit integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Habit integrity: SKIPPED (database not reachable)\n")
	}

	// Check 6: Completion integrity (only if DB is reachable)
	if dbReachable {
		if err := checkCompletionIntegrity(ctx); err != nil {
			fmt.Printf("❌ Completion integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Completion integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Completion integrity: SKIPPED (database not reachable)\n")
	}

	// Check 7: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}

	return nil
}

func migrationRunner(ctx *cli.Context) (*migration.Runner, error) {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations: %w", err)
	}
	return migration.NewRunner(db, subFS), nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if err != nil || runner == nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if err != nil || runner == nil {
		return err
	}

	status, err := runner.GetStatus()
	if err != nil {
		return err
	}
	if status.Pending > 0 {
		return fmt.Errorf("%d pending migration(s), run 'habitforge migrate' (current %d, latest %d)",
			status.Pending, status.Current, status.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'habitforge backup create'")
	}
	return nil
}

func checkHabitIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	for _, habit := range habits {
		if errs := validation.Habit(habit); len(errs) > 0 {
			return fmt.Errorf("habit #%d (%s) has invalid fields: %v", habit.ID, habit.Name, errs)
		}
	}
	return nil
}

func checkCompletionIntegrity(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	// Orphaned completions should be impossible with the FK cascade
	var orphans int
	if err := db.QueryRow(`
		SELECT COUNT(*) FROM completions c
		LEFT JOIN habits h ON h.id = c.habit_id
		WHERE h.id IS NULL`).Scan(&orphans); err != nil {
		return fmt.Errorf("failed to check for orphans: %w", err)
	}
	if orphans > 0 {
		return fmt.Errorf("%d completion(s) reference deleted habits", orphans)
	}

	var nonPositive int
	if err := db.QueryRow("SELECT COUNT(*) FROM completions WHERE count <= 0").Scan(&nonPositive); err != nil {
		return fmt.Errorf("failed to check counts: %w", err)
	}
	if nonPositive > 0 {
		return fmt.Errorf("%d completion(s) have a non-positive count", nonPositive)
	}

	rows, err := db.Query("SELECT id, date FROM completions")
	if err != nil {
		return fmt.Errorf("failed to load completion dates: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var date string
		if err := rows.Scan(&id, &date); err != nil {
			return err
		}
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			return fmt.Errorf("completion #%d has malformed date %q", id, date)
		}
	}
	return rows.Err()
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock appears to be wrong: %v", now)
	}
	if _, err := time.LoadLocation("UTC"); err != nil {
		return fmt.Errorf("timezone database unavailable: %w", err)
	}
	return nil
}
