package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ListRecent(ctx context.Context, limit int) ([]models.Feedback, error)
}

type feedbackRepository struct {
	*PostgresRepository
}

func NewFeedbackRepository(db *sql.DB, logger zerolog.Logger) FeedbackRepository {
	return &feedbackRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (id, name, feedback, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		feedback.ID,
		feedback.Name,
		feedback.Feedback,
		feedback.CreatedAt,
	)

	return err
}

func (r *feedbackRepository) ListRecent(ctx context.Context, limit int) ([]models.Feedback, error) {
	query := `
		SELECT id, name, feedback, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Feedback
	for rows.Next() {
		var entry models.Feedback
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Feedback, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
