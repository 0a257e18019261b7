// Package export moves all app data in and out of CSV-in-ZIP archives
// and wipes the database for a fresh start.
package export

import (
	"archive/zip"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/logger"
)

var requiredFiles = []string{
	constants.ExportHabitsFile,
	constants.ExportCompletionsFile,
	constants.ExportSettingsFile,
}

var habitColumns = []string{"id", "name", "color", "goal_type", "goal_count", "created_at", "archived"}
var completionColumns = []string{"id", "habit_id", "date", "count", "completed_at"}
var settingColumns = []string{"key", "value", "updated_at"}

// Counts summarizes how much data an operation touches, for confirmation
// prompts.
type Counts struct {
	Habits      int
	Completions int
}

// DataCounts reports the number of active habits and total completion rows.
func DataCounts(db *sql.DB) (Counts, error) {
	var c Counts
	if err := db.QueryRow("SELECT COUNT(*) FROM habits WHERE archived = 0").Scan(&c.Habits); err != nil {
		return Counts{}, fmt.Errorf("failed to count habits: %w", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM completions").Scan(&c.Completions); err != nil {
		return Counts{}, fmt.Errorf("failed to count completions: %w", err)
	}
	return c, nil
}

// ToZip writes a habitforge_backup_YYYYMMDD_HHMMSS.zip archive in destDir
// containing habits.csv, completions.csv, and settings.csv. Returns the
// path of the archive.
func ToZip(db *sql.DB, destDir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	zipPath := filepath.Join(destDir, fmt.Sprintf("%s%s.zip", constants.ExportFilePrefix, timestamp))

	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	tables := []struct {
		file    string
		query   string
		columns []string
	}{
		{constants.ExportHabitsFile, "SELECT id, name, color, goal_type, goal_count, created_at, archived FROM habits ORDER BY id", habitColumns},
		{constants.ExportCompletionsFile, "SELECT id, habit_id, date, count, completed_at FROM completions ORDER BY id", completionColumns},
		{constants.ExportSettingsFile, "SELECT key, value, updated_at FROM settings ORDER BY key", settingColumns},
	}

	for _, table := range tables {
		entry, err := zw.Create(table.file)
		if err != nil {
			zw.Close()
			return "", fmt.Errorf("failed to add %s to archive: %w", table.file, err)
		}
		rows, err := writeTableCSV(entry, db, table.query, table.columns)
		if err != nil {
			zw.Close()
			return "", fmt.Errorf("failed to export %s: %w", table.file, err)
		}
		logger.Debug("Exported table", "file", table.file, "rows", rows)
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync archive: %w", err)
	}

	logger.Info("Export complete", "path", zipPath)
	return zipPath, nil
}

// writeTableCSV streams query results as CSV, header row first.
// Returns the number of data rows written.
func writeTableCSV(w io.Writer, db *sql.DB, query string, columns []string) (int, error) {
	rows, err := db.Query(query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return 0, err
	}

	values := make([]sql.NullString, len(columns))
	scan := make([]any, len(columns))
	for i := range values {
		scan[i] = &values[i]
	}

	count := 0
	record := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return count, err
		}
		for i, v := range values {
			record[i] = v.String
		}
		if err := cw.Write(record); err != nil {
			return count, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	cw.Flush()
	return count, cw.Error()
}

// ValidateArchive checks that a ZIP file carries the required CSV files.
// Runs before any destructive import step.
func ValidateArchive(zipPath string) error {
	if _, err := os.Stat(zipPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", zipPath)
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("not a valid ZIP file: %w", err)
	}
	defer zr.Close()

	present := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		present[f.Name] = true
	}

	for _, name := range requiredFiles {
		if !present[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// FromZip wipes the database and replaces its contents with the data in
// the archive. The archive is validated before anything is deleted.
func FromZip(db *sql.DB, zipPath string) error {
	if err := ValidateArchive(zipPath); err != nil {
		return fmt.Errorf("invalid backup: %w", err)
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	records := make(map[string][][]string, len(requiredFiles))
	for _, name := range requiredFiles {
		recs, err := readArchiveCSV(&zr.Reader, name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		records[name] = recs
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := wipeTx(tx); err != nil {
		return fmt.Errorf("failed to clear existing data: %w", err)
	}

	if err := insertRecords(tx, records[constants.ExportHabitsFile], habitColumns,
		"INSERT INTO habits (id, name, color, goal_type, goal_count, created_at, archived) VALUES (?, ?, ?, ?, ?, ?, ?)"); err != nil {
		return fmt.Errorf("failed to import habits: %w", err)
	}
	if err := insertRecords(tx, records[constants.ExportCompletionsFile], completionColumns,
		"INSERT INTO completions (id, habit_id, date, count, completed_at) VALUES (?, ?, ?, ?, ?)"); err != nil {
		return fmt.Errorf("failed to import completions: %w", err)
	}
	if err := insertRecords(tx, records[constants.ExportSettingsFile], settingColumns,
		"INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)"); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Info("Import complete", "path", zipPath)
	return nil
}

// readArchiveCSV returns the data rows of a CSV entry, header stripped.
func readArchiveCSV(zr *zip.Reader, name string) ([][]string, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[1:], nil
}

func insertRecords(tx *sql.Tx, records [][]string, columns []string, query string) error {
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, record := range records {
		if len(record) != len(columns) {
			return fmt.Errorf("expected %d fields, got %d", len(columns), len(record))
		}
		args := make([]any, len(record))
		for i, v := range record {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return nil
}

// Wipe deletes all habits, completions, and settings, then restores the
// default language so the app starts clean.
func Wipe(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := wipeTx(tx); err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339)
	if _, err := tx.Exec(
		"INSERT INTO settings (key, value, updated_at) VALUES ('language', ?, ?)",
		constants.DefaultLanguage, now); err != nil {
		return fmt.Errorf("failed to reset language: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Info("All data wiped")
	return nil
}

func wipeTx(tx *sql.Tx) error {
	for _, stmt := range []string{
		"DELETE FROM habits",
		"DELETE FROM completions",
		"DELETE FROM settings",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	// sqlite_sequence only exists once an AUTOINCREMENT insert has happened
	_, _ = tx.Exec("DELETE FROM sqlite_sequence WHERE name IN ('habits', 'completions')")
	return nil
}
