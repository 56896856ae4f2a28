package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type StatsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserStats, error)
	RecordVisit(ctx context.Context, userID string, streak int, session models.StudySession) (bool, error)
}

type statsRepository struct {
	*PostgresRepository
}

func NewStatsRepository(db *sql.DB, logger zerolog.Logger) StatsRepository {
	return &statsRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *statsRepository) Get(ctx context.Context, userID string) (*models.UserStats, error) {
	query := `
		SELECT user_id, study_streak, last_studied_date, study_sessions
		FROM user_stats
		WHERE user_id = $1
	`

	stats := &models.UserStats{}
	var raw []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID,
		&stats.StudyStreak,
		&stats.LastStudiedDate,
		&raw,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &stats.StudySessions); err != nil {
		return nil, fmt.Errorf("failed to decode study sessions: %w", err)
	}

	return stats, nil
}

// RecordVisit appends the session and sets the new streak in one atomic
// statement. The last_studied_date guard makes the write a no-op when
// today's visit is already recorded, so two concurrent sessions of the
// same user cannot double-increment the streak. Returns whether a row was
// written.
func (r *statsRepository) RecordVisit(ctx context.Context, userID string, streak int, session models.StudySession) (bool, error) {
	raw, err := json.Marshal([]models.StudySession{session})
	if err != nil {
		return false, fmt.Errorf("failed to encode study session: %w", err)
	}

	query := `
		INSERT INTO user_stats (user_id, study_streak, last_studied_date, study_sessions)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET study_streak = EXCLUDED.study_streak,
			last_studied_date = EXCLUDED.last_studied_date,
			study_sessions = user_stats.study_sessions || EXCLUDED.study_sessions
		WHERE user_stats.last_studied_date::date < EXCLUDED.last_studied_date::date
	`

	result, err := r.db.ExecContext(ctx, query, userID, streak, session.Date, raw)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
