package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/storage/sqlite"
)

func newTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "habitforge.db")
	store := sqlite.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close test database: %v", err)
	}
	return path
}

func TestCreateBackup(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)

	backupPath, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		t.Fatalf("backup file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("backup file is empty")
	}

	name := filepath.Base(backupPath)
	if filepath.Ext(name) != constants.BackupFileSuffix {
		t.Errorf("backup filename %q has wrong suffix", name)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := manager.Create(); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestListBackupsSortedNewestFirst(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)

	// Fabricate snapshots with distinct timestamps
	if err := os.MkdirAll(manager.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	stamps := []string{"20250601-0900", "20250603-0900", "20250602-0900"}
	for _, stamp := range stamps {
		name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
		if err := os.WriteFile(filepath.Join(manager.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	// Files that don't match the naming scheme are ignored
	if err := os.WriteFile(filepath.Join(manager.BackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("List() returned %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first: %v after %v",
				backups[i].Timestamp, backups[i-1].Timestamp)
		}
	}
}

func TestListBackupsEmptyDir(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "habitforge.db"))
	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() on missing dir = %d backups, want 0", len(backups))
	}
}

func TestRotationKeepsRetentionLimit(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)

	if err := os.MkdirAll(manager.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < constants.MaxBackups+3; i++ {
		stamp := base.AddDate(0, 0, i).Format("20060102-1504")
		name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
		if err := os.WriteFile(filepath.Join(manager.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	// A real backup triggers rotation
	if _, err := manager.Create(); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("after rotation %d backups remain, want %d", len(backups), constants.MaxBackups)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)

	backupPath, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Corrupt the live database, then restore
	if err := os.WriteFile(dbPath, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := manager.Restore(backupPath); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("restored database failed to load: %v", err)
	}
	defer store.Close()

	if _, err := store.GetSettings(); err != nil {
		t.Errorf("restored database missing settings: %v", err)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := manager.Restore(bogus); err == nil {
		t.Error("expected error restoring invalid backup")
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "habitforge.db"))
	if err := manager.Restore("/nonexistent/backup.db"); err == nil {
		t.Error("expected error for missing backup file")
	}
}

type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 0 }
func (p fakeProcess) Executable() string { return p.name }

func TestEnsureExclusive(t *testing.T) {
	orig := listProcessesFunc
	defer func() { listProcessesFunc = orig }()

	listProcessesFunc = func() ([]ps.Process, error) {
		return []ps.Process{
			fakeProcess{pid: os.Getpid(), name: constants.AppName},
			fakeProcess{pid: 1234, name: "bash"},
		}, nil
	}
	if err := EnsureExclusive(); err != nil {
		t.Errorf("EnsureExclusive() error = %v, want nil", err)
	}

	listProcessesFunc = func() ([]ps.Process, error) {
		return []ps.Process{
			fakeProcess{pid: os.Getpid(), name: constants.AppName},
			fakeProcess{pid: 5678, name: constants.AppName},
		}, nil
	}
	if err := EnsureExclusive(); err == nil {
		t.Error("EnsureExclusive() expected error when another instance is running")
	}

	listProcessesFunc = func() ([]ps.Process, error) {
		return nil, fmt.Errorf("ps failed")
	}
	if err := EnsureExclusive(); err == nil {
		t.Error("EnsureExclusive() expected error when process listing fails")
	}
}
