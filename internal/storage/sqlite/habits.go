package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/storage"
)

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var goalType, createdAt string
	var archived int

	err := row.Scan(&h.ID, &h.Name, &h.Color, &goalType, &h.GoalCount, &createdAt, &archived)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, storage.ErrNotFound
		}
		return models.Habit{}, err
	}

	h.GoalType, err = models.ParseGoalType(goalType)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %d: %w", h.ID, err)
	}
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %d: %w", h.ID, err)
	}
	h.Archived = archived != 0

	return h, nil
}

func (s *Store) CreateHabit(habit models.Habit) (models.Habit, error) {
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now()
	}

	result, err := s.db.Exec(`
		INSERT INTO habits (name, color, goal_type, goal_count, created_at, archived)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.Name, habit.Color, string(habit.GoalType), habit.GoalCount,
		habit.CreatedAt.Format(time.RFC3339), boolToInt(habit.Archived))
	if err != nil {
		return models.Habit{}, err
	}

	habit.ID, err = result.LastInsertId()
	if err != nil {
		return models.Habit{}, err
	}

	return habit, nil
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, color, goal_type, goal_count, created_at, archived
		FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, color, goal_type, goal_count, created_at, archived
		FROM habits WHERE name = ? COLLATE NOCASE`, name)
	return scanHabit(row)
}

func (s *Store) GetAllHabits(includeArchived bool) ([]models.Habit, error) {
	// Check if table exists (for backward compatibility)
	exists, err := s.tableExists("habits")
	if err != nil || !exists {
		return []models.Habit{}, nil
	}

	query := "SELECT id, name, color, goal_type, goal_count, created_at, archived FROM habits"
	if !includeArchived {
		query += " WHERE archived = 0"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	result, err := s.db.Exec(`
		UPDATE habits SET
			name = ?,
			color = ?,
			goal_type = ?,
			goal_count = ?,
			archived = ?
		WHERE id = ?`,
		habit.Name, habit.Color, string(habit.GoalType), habit.GoalCount,
		boolToInt(habit.Archived), habit.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Store) ArchiveHabit(id int64) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived = 1 WHERE id = ? AND archived = 0`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found or already archived")
	}

	return nil
}

func (s *Store) UnarchiveHabit(id int64) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived = 0 WHERE id = ? AND archived = 1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found or not archived")
	}

	return nil
}

func (s *Store) DeleteHabit(id int64) error {
	// Completions are removed by the ON DELETE CASCADE constraint.
	result, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Store) CountHabits(includeArchived bool) (int, error) {
	query := "SELECT count(*) FROM habits"
	if !includeArchived {
		query += " WHERE archived = 0"
	}

	var count int
	if err := s.db.QueryRow(query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
