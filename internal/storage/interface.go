package storage

import (
	"errors"
	"time"

	"github.com/habitforge/habitforge/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	CreateHabit(models.Habit) (models.Habit, error)
	GetHabit(id int64) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeArchived bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id int64) error
	UnarchiveHabit(id int64) error
	// DeleteHabit permanently removes a habit and all of its completions.
	DeleteHabit(id int64) error
	CountHabits(includeArchived bool) (int, error)

	// Completions
	// IncrementCompletion adds amount to the completion count for the given
	// habit and day, creating the record if none exists.
	IncrementCompletion(habitID int64, date time.Time, amount int) (models.Completion, error)
	// DecrementCompletion subtracts amount from the completion count for the
	// given habit and day. Counts never go below zero; a record that reaches
	// zero is removed.
	DecrementCompletion(habitID int64, date time.Time, amount int) (models.Completion, error)
	GetCompletion(habitID int64, date time.Time) (models.Completion, error)
	GetCompletionsForHabit(habitID int64, start, end time.Time) ([]models.Completion, error)
	CountCompletions(habitID int64) (int, error)

	// Utils
	GetConfigPath() string
}
