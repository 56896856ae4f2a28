package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type TimetableRepository interface {
	CreateEntry(ctx context.Context, entry *models.TimetableEntry) error
	GetEntry(ctx context.Context, userID, id string) (*models.TimetableEntry, error)
	ListEntries(ctx context.Context, userID string, entryType models.TimetableType) ([]models.TimetableEntry, error)
	UpdateEntry(ctx context.Context, entry *models.TimetableEntry) error
	DeleteEntry(ctx context.Context, userID, id string) error

	GetSettings(ctx context.Context, userID string) (*models.TimetableSettings, error)
	CreateSettings(ctx context.Context, settings *models.TimetableSettings) error
	AddSlot(ctx context.Context, userID string, slot models.TimeSlot) error
	DeleteSlotCascade(ctx context.Context, userID string, slot models.TimeSlot) error
}

type timetableRepository struct {
	*PostgresRepository
}

func NewTimetableRepository(db *sql.DB, logger zerolog.Logger) TimetableRepository {
	return &timetableRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *timetableRepository) CreateEntry(ctx context.Context, entry *models.TimetableEntry) error {
	query := `
		INSERT INTO timetable_entries (id, user_id, type, day, date, start_time, end_time, subject, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Type,
		entry.Day,
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		entry.Subject,
		entry.Details,
	)

	return err
}

func (r *timetableRepository) GetEntry(ctx context.Context, userID, id string) (*models.TimetableEntry, error) {
	query := `
		SELECT id, user_id, type, day, date, start_time, end_time, subject, details
		FROM timetable_entries
		WHERE id = $1 AND user_id = $2
	`

	entry := &models.TimetableEntry{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Type,
		&entry.Day,
		&entry.Date,
		&entry.StartTime,
		&entry.EndTime,
		&entry.Subject,
		&entry.Details,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return entry, err
}

// ListEntries returns the user's entries of one type. Exam entries come
// back in ascending date order; lectures are unordered, the grid looks
// them up by (day, startTime).
func (r *timetableRepository) ListEntries(ctx context.Context, userID string, entryType models.TimetableType) ([]models.TimetableEntry, error) {
	query := `
		SELECT id, user_id, type, day, date, start_time, end_time, subject, details
		FROM timetable_entries
		WHERE user_id = $1 AND type = $2
	`
	if entryType != models.TimetableLecture {
		query += ` ORDER BY date`
	}

	rows, err := r.db.QueryContext(ctx, query, userID, entryType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.TimetableEntry
	for rows.Next() {
		var entry models.TimetableEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Type,
			&entry.Day,
			&entry.Date,
			&entry.StartTime,
			&entry.EndTime,
			&entry.Subject,
			&entry.Details,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *timetableRepository) UpdateEntry(ctx context.Context, entry *models.TimetableEntry) error {
	query := `
		UPDATE timetable_entries
		SET day = $1, date = $2, start_time = $3, end_time = $4, subject = $5, details = $6
		WHERE id = $7 AND user_id = $8
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.Day,
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		entry.Subject,
		entry.Details,
		entry.ID,
		entry.UserID,
	)

	return err
}

func (r *timetableRepository) DeleteEntry(ctx context.Context, userID, id string) error {
	query := `DELETE FROM timetable_entries WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}

func (r *timetableRepository) GetSettings(ctx context.Context, userID string) (*models.TimetableSettings, error) {
	query := `SELECT id, user_id, time_slots FROM user_timetable_settings WHERE user_id = $1`

	settings := &models.TimetableSettings{}
	var raw []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&settings.ID, &settings.UserID, &raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &settings.TimeSlots); err != nil {
		return nil, fmt.Errorf("failed to decode time slots: %w", err)
	}

	return settings, nil
}

func (r *timetableRepository) CreateSettings(ctx context.Context, settings *models.TimetableSettings) error {
	raw, err := json.Marshal(settings.TimeSlots)
	if err != nil {
		return fmt.Errorf("failed to encode time slots: %w", err)
	}

	query := `
		INSERT INTO user_timetable_settings (id, user_id, time_slots)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err = r.db.ExecContext(ctx, query, settings.ID, settings.UserID, raw)
	return err
}

// AddSlot appends the slot to the settings set unless an equal member is
// already present (array-union semantics).
func (r *timetableRepository) AddSlot(ctx context.Context, userID string, slot models.TimeSlot) error {
	raw, err := json.Marshal([]models.TimeSlot{slot})
	if err != nil {
		return fmt.Errorf("failed to encode time slot: %w", err)
	}

	query := `
		UPDATE user_timetable_settings
		SET time_slots = time_slots || $2::jsonb
		WHERE user_id = $1 AND NOT time_slots @> $2::jsonb
	`

	_, err = r.db.ExecContext(ctx, query, userID, raw)
	return err
}

// DeleteSlotCascade removes the slot from the settings set and deletes
// every lecture entry matching the exact (start, end) pair, atomically.
func (r *timetableRepository) DeleteSlotCascade(ctx context.Context, userID string, slot models.TimeSlot) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		slotQuery := `
			UPDATE user_timetable_settings
			SET time_slots = COALESCE(
				(SELECT jsonb_agg(elem)
				 FROM jsonb_array_elements(time_slots) elem
				 WHERE NOT (elem->>'start' = $2 AND elem->>'end' = $3)),
				'[]'::jsonb)
			WHERE user_id = $1
		`
		if _, err := tx.ExecContext(ctx, slotQuery, userID, slot.Start, slot.End); err != nil {
			return err
		}

		entryQuery := `
			DELETE FROM timetable_entries
			WHERE user_id = $1 AND type = 'lecture' AND start_time = $2 AND end_time = $3
		`
		_, err := tx.ExecContext(ctx, entryQuery, userID, slot.Start, slot.End)
		return err
	})
}
