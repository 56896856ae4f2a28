package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetPhotoURL(ctx context.Context, id, photoURL string) error
	CreateResetToken(ctx context.Context, token, userID string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

type userRepository struct {
	*PostgresRepository
}

func NewUserRepository(db *sql.DB, logger zerolog.Logger) UserRepository {
	return &userRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const userColumns = `id, email, password_hash, first_name, last_name, profession,
	COALESCE(class_name, ''), COALESCE(college_name, ''), COALESCE(photo_url, ''),
	created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Profession,
		&user.ClassName,
		&user.CollegeName,
		&user.PhotoURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, profession,
			class_name, college_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Profession,
		user.ClassName,
		user.CollegeName,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, class_name = NULLIF($3, ''),
			college_name = NULLIF($4, ''), updated_at = $5
		WHERE id = $6
	`

	_, err := r.db.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.ClassName,
		user.CollegeName,
		time.Now(),
		user.ID,
	)

	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	return err
}

func (r *userRepository) SetPhotoURL(ctx context.Context, id, photoURL string) error {
	query := `UPDATE users SET photo_url = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, photoURL, time.Now(), id)
	return err
}

func (r *userRepository) CreateResetToken(ctx context.Context, token, userID string, expiresAt time.Time) error {
	query := `
		INSERT INTO password_reset_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, token, userID, expiresAt)
	return err
}

// ConsumeResetToken deletes the token and returns the owning user id.
// Expired or unknown tokens return an empty id.
func (r *userRepository) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	query := `
		DELETE FROM password_reset_tokens
		WHERE token = $1 AND expires_at > now()
		RETURNING user_id
	`

	var userID string
	err := r.db.QueryRowContext(ctx, query, token).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return userID, err
}
