package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type MaterialRepository interface {
	Create(ctx context.Context, material *models.StudyMaterial) error
	GetByID(ctx context.Context, userID, id string) (*models.StudyMaterial, error)
	ListBySubject(ctx context.Context, userID, subjectID string) ([]models.StudyMaterial, error)
	Delete(ctx context.Context, userID, id string) error
	ListPublic(ctx context.Context, limit int) ([]models.StudyMaterial, error)
}

type materialRepository struct {
	*PostgresRepository
}

func NewMaterialRepository(db *sql.DB, logger zerolog.Logger) MaterialRepository {
	return &materialRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *materialRepository) Create(ctx context.Context, material *models.StudyMaterial) error {
	query := `
		INSERT INTO study_materials (id, subject_id, user_id, type, content_type, title, content, is_public, uploader_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		material.ID,
		material.SubjectID,
		material.UserID,
		material.Type,
		material.ContentType,
		material.Title,
		material.Content,
		material.IsPublic,
		material.UploaderName,
		material.CreatedAt,
	)

	return err
}

func (r *materialRepository) GetByID(ctx context.Context, userID, id string) (*models.StudyMaterial, error) {
	query := `
		SELECT id, subject_id, user_id, type, content_type, title, content, is_public, uploader_name, created_at
		FROM study_materials
		WHERE id = $1 AND user_id = $2
	`

	material := &models.StudyMaterial{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&material.ID,
		&material.SubjectID,
		&material.UserID,
		&material.Type,
		&material.ContentType,
		&material.Title,
		&material.Content,
		&material.IsPublic,
		&material.UploaderName,
		&material.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return material, err
}

// ListBySubject returns the subject's materials sorted by ascending title.
func (r *materialRepository) ListBySubject(ctx context.Context, userID, subjectID string) ([]models.StudyMaterial, error) {
	query := `
		SELECT id, subject_id, user_id, type, content_type, title, content, is_public, uploader_name, created_at
		FROM study_materials
		WHERE user_id = $1 AND subject_id = $2
		ORDER BY title
	`

	rows, err := r.db.QueryContext(ctx, query, userID, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMaterials(rows, false)
}

func (r *materialRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM study_materials WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}

// ListPublic fetches up to limit public materials joined to the owning
// subject's title. The bound keeps the client-side substring filter a small
// fixed-size scan rather than a search index.
func (r *materialRepository) ListPublic(ctx context.Context, limit int) ([]models.StudyMaterial, error) {
	query := `
		SELECT m.id, m.subject_id, m.user_id, m.type, m.content_type, m.title, m.content,
			m.is_public, m.uploader_name, m.created_at, s.title
		FROM study_materials m
		JOIN subjects s ON s.id = m.subject_id
		WHERE m.is_public
		ORDER BY m.created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMaterials(rows, true)
}

func scanMaterials(rows *sql.Rows, withSubjectTitle bool) ([]models.StudyMaterial, error) {
	var materials []models.StudyMaterial
	for rows.Next() {
		var material models.StudyMaterial
		dest := []interface{}{
			&material.ID,
			&material.SubjectID,
			&material.UserID,
			&material.Type,
			&material.ContentType,
			&material.Title,
			&material.Content,
			&material.IsPublic,
			&material.UploaderName,
			&material.CreatedAt,
		}
		if withSubjectTitle {
			dest = append(dest, &material.SubjectTitle)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}

	return materials, rows.Err()
}
