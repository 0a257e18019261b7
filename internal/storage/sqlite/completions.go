package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/period"
	"github.com/habitforge/habitforge/internal/storage"
)

func scanCompletion(row interface{ Scan(...any) error }) (models.Completion, error) {
	var c models.Completion
	var date, completedAt string

	err := row.Scan(&c.ID, &c.HabitID, &date, &c.Count, &completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Completion{}, storage.ErrNotFound
		}
		return models.Completion{}, err
	}

	c.Date, err = time.ParseInLocation(constants.DateFormat, date, time.UTC)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse date for completion %d: %w", c.ID, err)
	}
	c.CompletedAt, err = time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse completed_at for completion %d: %w", c.ID, err)
	}

	return c, nil
}

func (s *Store) IncrementCompletion(habitID int64, date time.Time, amount int) (models.Completion, error) {
	if amount <= 0 {
		return models.Completion{}, fmt.Errorf("increment amount must be positive, got %d", amount)
	}

	day := period.DateOf(date).Format(constants.DateFormat)
	now := time.Now().Format(time.RFC3339)

	_, err := s.db.Exec(`
		INSERT INTO completions (habit_id, date, count, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(habit_id, date) DO UPDATE SET
			count = count + excluded.count,
			completed_at = excluded.completed_at`,
		habitID, day, amount, now)
	if err != nil {
		return models.Completion{}, err
	}

	return s.GetCompletion(habitID, date)
}

func (s *Store) DecrementCompletion(habitID int64, date time.Time, amount int) (models.Completion, error) {
	if amount <= 0 {
		return models.Completion{}, fmt.Errorf("decrement amount must be positive, got %d", amount)
	}

	day := period.DateOf(date).Format(constants.DateFormat)

	result, err := s.db.Exec(`
		UPDATE completions SET count = MAX(count - ?, 0)
		WHERE habit_id = ? AND date = ?`,
		amount, habitID, day)
	if err != nil {
		return models.Completion{}, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return models.Completion{}, err
	}
	if rows == 0 {
		return models.Completion{}, storage.ErrNotFound
	}

	// Rows that reach zero are removed so streak and heatmap scans
	// never see empty completions.
	if _, err := s.db.Exec(`
		DELETE FROM completions WHERE habit_id = ? AND date = ? AND count = 0`,
		habitID, day); err != nil {
		return models.Completion{}, err
	}

	c, err := s.GetCompletion(habitID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Completion{
			HabitID: habitID,
			Date:    period.DateOf(date),
			Count:   0,
		}, nil
	}
	return c, err
}

func (s *Store) GetCompletion(habitID int64, date time.Time) (models.Completion, error) {
	day := period.DateOf(date).Format(constants.DateFormat)
	row := s.db.QueryRow(`
		SELECT id, habit_id, date, count, completed_at
		FROM completions WHERE habit_id = ? AND date = ?`,
		habitID, day)
	return scanCompletion(row)
}

func (s *Store) GetCompletionsForHabit(habitID int64, start, end time.Time) ([]models.Completion, error) {
	startDay := period.DateOf(start).Format(constants.DateFormat)
	endDay := period.DateOf(end).Format(constants.DateFormat)

	rows, err := s.db.Query(`
		SELECT id, habit_id, date, count, completed_at
		FROM completions
		WHERE habit_id = ? AND date >= ? AND date <= ?
		ORDER BY date`, habitID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}

	return completions, rows.Err()
}

func (s *Store) CountCompletions(habitID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(count), 0) FROM completions WHERE habit_id = ?`,
		habitID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
