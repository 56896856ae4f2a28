package repository

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/config"
)

// AvatarRepository stores profile pictures in an S3-compatible bucket and
// hands back publicly fetchable URLs.
type AvatarRepository interface {
	Upload(ctx context.Context, userID, fileName string, file io.Reader, size int64, contentType string) (string, error)
	// Delete removes the object a previously returned URL points at.
	// URLs outside this bucket are ignored.
	Delete(ctx context.Context, avatarURL string) error
}

type avatarRepository struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
	logger    zerolog.Logger
}

func NewAvatarRepository(cfg config.StorageConfig, logger zerolog.Logger) (AvatarRepository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	repo := &avatarRepository{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		publicURL: cfg.PublicURL,
		logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.ensureBucket(ctx); err != nil {
		// Keep the service running; uploads retry bucket creation on demand.
		logger.Error().Err(err).
			Str("endpoint", cfg.Endpoint).
			Str("bucket", cfg.Bucket).
			Msg("Object storage not ready during startup")
	} else {
		logger.Info().
			Str("endpoint", cfg.Endpoint).
			Str("bucket", cfg.Bucket).
			Msg("Connected to object storage")
	}

	return repo, nil
}

func (r *avatarRepository) ensureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{Region: r.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		r.logger.Info().Str("bucket", r.bucket).Msg("Created avatar bucket")
	}
	return nil
}

func (r *avatarRepository) Upload(ctx context.Context, userID, fileName string, file io.Reader, size int64, contentType string) (string, error) {
	if err := r.ensureBucket(ctx); err != nil {
		return "", err
	}

	objectName := r.objectName(userID, fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := r.client.PutObject(ctx, r.bucket, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	r.logger.Debug().
		Str("user_id", userID).
		Str("object", objectName).
		Str("etag", info.ETag).
		Int64("size", size).
		Msg("Avatar uploaded")

	return fmt.Sprintf("%s/%s/%s", r.publicURL, r.bucket, objectName), nil
}

func (r *avatarRepository) Delete(ctx context.Context, avatarURL string) error {
	objectName, ok := strings.CutPrefix(avatarURL, fmt.Sprintf("%s/%s/", r.publicURL, r.bucket))
	if !ok {
		return nil
	}
	if err := r.client.RemoveObject(ctx, r.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}

func (r *avatarRepository) objectName(userID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("avatars/%s/%d%s", userID, time.Now().UnixNano(), ext)
}
