package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, userID, id string) (*models.Subject, error)
	ListByUser(ctx context.Context, userID string) ([]models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	DeleteCascade(ctx context.Context, userID, id string) (bool, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type subjectRepository struct {
	*PostgresRepository
}

func NewSubjectRepository(db *sql.DB, logger zerolog.Logger) SubjectRepository {
	return &subjectRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (id, user_id, title, instructor, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		subject.ID,
		subject.UserID,
		subject.Title,
		subject.Instructor,
		subject.CreatedAt,
	)

	return err
}

func (r *subjectRepository) GetByID(ctx context.Context, userID, id string) (*models.Subject, error) {
	query := `
		SELECT id, user_id, title, instructor, created_at
		FROM subjects
		WHERE id = $1 AND user_id = $2
	`

	subject := &models.Subject{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&subject.ID,
		&subject.UserID,
		&subject.Title,
		&subject.Instructor,
		&subject.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return subject, err
}

func (r *subjectRepository) ListByUser(ctx context.Context, userID string) ([]models.Subject, error) {
	query := `
		SELECT id, user_id, title, instructor, created_at
		FROM subjects
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subject models.Subject
		err := rows.Scan(
			&subject.ID,
			&subject.UserID,
			&subject.Title,
			&subject.Instructor,
			&subject.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}

	return subjects, rows.Err()
}

func (r *subjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET title = $1, instructor = $2
		WHERE id = $3 AND user_id = $4
	`

	_, err := r.db.ExecContext(ctx, query,
		subject.Title,
		subject.Instructor,
		subject.ID,
		subject.UserID,
	)

	return err
}

// DeleteCascade removes the subject together with its assignments, study
// materials, and study-plan events in one transaction. Returns false when
// the subject does not exist for this user; nothing is removed in that case.
func (r *subjectRepository) DeleteCascade(ctx context.Context, userID, id string) (bool, error) {
	deleted := false

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM assignments WHERE subject_id = $1 AND user_id = $2`, id, userID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM study_materials WHERE subject_id = $1 AND user_id = $2`, id, userID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM study_plan_events WHERE subject_id = $1 AND user_id = $2`, id, userID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM subjects WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		deleted = true
		return nil
	})

	if err == sql.ErrNoRows {
		return false, nil
	}

	return deleted, err
}

func (r *subjectRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM subjects WHERE user_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}
