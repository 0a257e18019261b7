// Package data implements bulk export, import, and wipe commands.
package data

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/habitforge/habitforge/internal/backup"
	"github.com/habitforge/habitforge/internal/cli"
	"github.com/habitforge/habitforge/internal/export"
	"github.com/habitforge/habitforge/internal/storage/sqlite"
)

type ExportCmd struct {
	Dir string `help:"Directory to write the archive to (default: current directory)." default:"."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	db, err := storeDB(ctx)
	if err != nil {
		return err
	}

	counts, err := export.DataCounts(db)
	if err != nil {
		return err
	}

	zipPath, err := export.ToZip(db, c.Dir)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Exported %d habits and %d completions to %s\n",
		counts.Habits, counts.Completions, filepath.Base(zipPath))
	return nil
}

type ImportCmd struct {
	Archive string `arg:"" help:"ZIP archive produced by 'habitforge export'."`
	Yes     bool   `help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	db, err := storeDB(ctx)
	if err != nil {
		return err
	}

	// Validate before any prompt so a bad archive fails fast
	if err := export.ValidateArchive(c.Archive); err != nil {
		return fmt.Errorf("invalid backup: %w", err)
	}

	// Importing while another process holds the database invites conflicts
	if err := backup.EnsureExclusive(); err != nil {
		return err
	}

	counts, err := export.DataCounts(db)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("⚠️  WARNING: This replaces %d habits and %d completions with the archive contents.\n",
			counts.Habits, counts.Completions)
		if !confirm() {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := export.FromZip(db, c.Archive); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Println("✓ Data imported successfully.")
	return nil
}

type WipeCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *WipeCmd) Run(ctx *cli.Context) error {
	db, err := storeDB(ctx)
	if err != nil {
		return err
	}

	counts, err := export.DataCounts(db)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("⚠️  WARNING: This permanently deletes %d habits and %d completions.\n",
			counts.Habits, counts.Completions)
		if !confirm() {
			fmt.Println("Wipe cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := export.Wipe(db); err != nil {
		return fmt.Errorf("wipe failed: %w", err)
	}

	fmt.Println("✓ All data deleted.")
	return nil
}

func storeDB(ctx *cli.Context) (*sql.DB, error) {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, fmt.Errorf("data commands only support SQLite storage")
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return db, nil
}

func confirm() bool {
	fmt.Print("Continue? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
