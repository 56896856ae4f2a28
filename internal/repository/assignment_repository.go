package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, userID, id string) (*models.Assignment, error)
	ListByUser(ctx context.Context, userID, subjectID string) ([]models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, userID, id string) error
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db *sql.DB, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := `
		INSERT INTO assignments (id, subject_id, user_id, title, due_date, status, grade, subject_title, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		assignment.ID,
		assignment.SubjectID,
		assignment.UserID,
		assignment.Title,
		assignment.DueDate,
		assignment.Status,
		assignment.Grade,
		assignment.SubjectTitle,
		assignment.CreatedAt,
	)

	return err
}

func (r *assignmentRepository) GetByID(ctx context.Context, userID, id string) (*models.Assignment, error) {
	query := `
		SELECT id, subject_id, user_id, title, due_date, status, grade, subject_title, created_at
		FROM assignments
		WHERE id = $1 AND user_id = $2
	`

	assignment := &models.Assignment{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&assignment.ID,
		&assignment.SubjectID,
		&assignment.UserID,
		&assignment.Title,
		&assignment.DueDate,
		&assignment.Status,
		&assignment.Grade,
		&assignment.SubjectTitle,
		&assignment.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return assignment, err
}

// ListByUser returns the user's assignments in ascending due-date order.
// An empty subjectID returns assignments across all subjects.
func (r *assignmentRepository) ListByUser(ctx context.Context, userID, subjectID string) ([]models.Assignment, error) {
	query := `
		SELECT id, subject_id, user_id, title, due_date, status, grade, subject_title, created_at
		FROM assignments
		WHERE user_id = $1 AND ($2 = '' OR subject_id::text = $2)
		ORDER BY due_date
	`

	rows, err := r.db.QueryContext(ctx, query, userID, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var assignment models.Assignment
		err := rows.Scan(
			&assignment.ID,
			&assignment.SubjectID,
			&assignment.UserID,
			&assignment.Title,
			&assignment.DueDate,
			&assignment.Status,
			&assignment.Grade,
			&assignment.SubjectTitle,
			&assignment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	query := `
		UPDATE assignments
		SET title = $1, due_date = $2, status = $3, grade = $4
		WHERE id = $5 AND user_id = $6
	`

	_, err := r.db.ExecContext(ctx, query,
		assignment.Title,
		assignment.DueDate,
		assignment.Status,
		assignment.Grade,
		assignment.ID,
		assignment.UserID,
	)

	return err
}

func (r *assignmentRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM assignments WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}
