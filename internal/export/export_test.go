package export

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/period"
	"github.com/habitforge/habitforge/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitforge.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func seedStore(t *testing.T, store *sqlite.Store) models.Habit {
	t.Helper()

	habit, err := store.CreateHabit(models.Habit{
		Name:      "Meditate",
		Color:     "#81C784",
		GoalType:  models.GoalDaily,
		GoalCount: 1,
		CreatedAt: time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateHabit() error = %v", err)
	}
	for _, d := range []time.Time{
		period.Date(2025, time.June, 2),
		period.Date(2025, time.June, 3),
	} {
		if _, err := store.IncrementCompletion(habit.ID, d, 1); err != nil {
			t.Fatalf("IncrementCompletion() error = %v", err)
		}
	}
	return habit
}

func TestDataCounts(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store)

	counts, err := DataCounts(store.GetDB())
	if err != nil {
		t.Fatalf("DataCounts() error = %v", err)
	}
	if counts.Habits != 1 {
		t.Errorf("Habits = %d, want 1", counts.Habits)
	}
	if counts.Completions != 2 {
		t.Errorf("Completions = %d, want 2", counts.Completions)
	}
}

func TestToZipProducesRequiredFiles(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store)

	destDir := t.TempDir()
	zipPath, err := ToZip(store.GetDB(), destDir)
	if err != nil {
		t.Fatalf("ToZip() error = %v", err)
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer zr.Close()

	present := make(map[string]bool)
	for _, f := range zr.File {
		present[f.Name] = true
	}
	for _, name := range requiredFiles {
		if !present[name] {
			t.Errorf("archive missing %s", name)
		}
	}
}

func TestValidateArchive(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store)

	zipPath, err := ToZip(store.GetDB(), t.TempDir())
	if err != nil {
		t.Fatalf("ToZip() error = %v", err)
	}
	if err := ValidateArchive(zipPath); err != nil {
		t.Errorf("ValidateArchive() error = %v", err)
	}

	if err := ValidateArchive("/nonexistent.zip"); err == nil {
		t.Error("expected error for missing file")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.zip")
	if err := os.WriteFile(bogus, []byte("not a zip"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := ValidateArchive(bogus); err == nil {
		t.Error("expected error for non-ZIP file")
	}

	// A ZIP missing the required CSVs is rejected
	partial := filepath.Join(t.TempDir(), "partial.zip")
	f, err := os.Create(partial)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	if _, err := zw.Create("habits.csv"); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := ValidateArchive(partial); err == nil {
		t.Error("expected error for archive missing required files")
	}
}

func TestRoundTrip(t *testing.T) {
	src := newTestStore(t)
	habit := seedStore(t, src)

	zipPath, err := ToZip(src.GetDB(), t.TempDir())
	if err != nil {
		t.Fatalf("ToZip() error = %v", err)
	}

	dst := newTestStore(t)
	if err := FromZip(dst.GetDB(), zipPath); err != nil {
		t.Fatalf("FromZip() error = %v", err)
	}

	got, err := dst.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("GetHabit() after import error = %v", err)
	}
	if got.Name != habit.Name || got.GoalType != habit.GoalType || got.GoalCount != habit.GoalCount {
		t.Errorf("imported habit = %+v, want %+v", got, habit)
	}

	completions, err := dst.GetCompletionsForHabit(habit.ID,
		period.Date(2025, time.June, 1), period.Date(2025, time.June, 30))
	if err != nil {
		t.Fatalf("GetCompletionsForHabit() error = %v", err)
	}
	if len(completions) != 2 {
		t.Errorf("imported %d completions, want 2", len(completions))
	}
}

func TestFromZipRejectsInvalidWithoutWiping(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store)

	bogus := filepath.Join(t.TempDir(), "bogus.zip")
	if err := os.WriteFile(bogus, []byte("not a zip"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := FromZip(store.GetDB(), bogus); err == nil {
		t.Fatal("expected error importing invalid archive")
	}

	// Existing data survives a failed import
	counts, err := DataCounts(store.GetDB())
	if err != nil {
		t.Fatalf("DataCounts() error = %v", err)
	}
	if counts.Habits != 1 || counts.Completions != 2 {
		t.Errorf("data modified by failed import: %+v", counts)
	}
}

func TestWipe(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store)

	if err := Wipe(store.GetDB()); err != nil {
		t.Fatalf("Wipe() error = %v", err)
	}

	counts, err := DataCounts(store.GetDB())
	if err != nil {
		t.Fatalf("DataCounts() error = %v", err)
	}
	if counts.Habits != 0 || counts.Completions != 0 {
		t.Errorf("data remains after wipe: %+v", counts)
	}

	// Language resets to the default
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.Language != "en" {
		t.Errorf("Language = %q, want %q", settings.Language, "en")
	}
}
