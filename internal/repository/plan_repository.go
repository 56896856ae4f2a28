package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type PlanRepository interface {
	Create(ctx context.Context, event *models.StudyPlanEvent) error
	ListByUser(ctx context.Context, userID string) ([]models.StudyPlanEvent, error)
	Delete(ctx context.Context, userID, id string) error
}

type planRepository struct {
	*PostgresRepository
}

func NewPlanRepository(db *sql.DB, logger zerolog.Logger) PlanRepository {
	return &planRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *planRepository) Create(ctx context.Context, event *models.StudyPlanEvent) error {
	query := `
		INSERT INTO study_plan_events (id, subject_id, user_id, day, time, topic, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.SubjectID,
		event.UserID,
		event.Day,
		event.Time,
		event.Topic,
		event.Description,
		event.CreatedAt,
	)

	return err
}

func (r *planRepository) ListByUser(ctx context.Context, userID string) ([]models.StudyPlanEvent, error) {
	query := `
		SELECT id, subject_id, user_id, day, time, topic, description, created_at
		FROM study_plan_events
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.StudyPlanEvent
	for rows.Next() {
		var event models.StudyPlanEvent
		err := rows.Scan(
			&event.ID,
			&event.SubjectID,
			&event.UserID,
			&event.Day,
			&event.Time,
			&event.Topic,
			&event.Description,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *planRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM study_plan_events WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}
