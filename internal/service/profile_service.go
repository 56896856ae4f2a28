package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/repository"
	"github.com/studytrack/studytrack-backend/internal/watch"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error)
	UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64, contentType string) (string, error)
}

type profileService struct {
	userRepo   repository.UserRepository
	avatarRepo repository.AvatarRepository
	broadcast  ChangeBroadcaster
	logger     zerolog.Logger
}

func NewProfileService(userRepo repository.UserRepository, avatarRepo repository.AvatarRepository, broadcast ChangeBroadcaster, logger zerolog.Logger) ProfileService {
	return &profileService{
		userRepo:   userRepo,
		avatarRepo: avatarRepo,
		broadcast:  broadcast,
		logger:     logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile applies the request's non-nil fields and returns the
// updated user.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.ClassName != nil {
		user.ClassName = *req.ClassName
	}
	if req.CollegeName != nil {
		user.CollegeName = *req.CollegeName
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.broadcast.Broadcast(ctx, watch.CollectionProfiles, userID)
	return user, nil
}

// UploadAvatar stores the image and points the profile at its public URL.
func (s *profileService) UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64, contentType string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", ErrNotFound
	}

	photoURL, err := s.avatarRepo.Upload(ctx, userID, fileName, file, size, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.SetPhotoURL(ctx, userID, photoURL); err != nil {
		return "", fmt.Errorf("failed to save avatar url: %w", err)
	}

	// The old object is unreferenced now; losing it only leaks storage,
	// so a failed cleanup must not fail the upload.
	if old := user.PhotoURL; old != "" && old != photoURL {
		if err := s.avatarRepo.Delete(ctx, old); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to remove previous avatar")
		}
	}

	s.logger.Info().Str("user_id", userID).Msg("Avatar updated")
	s.broadcast.Broadcast(ctx, watch.CollectionProfiles, userID)
	return photoURL, nil
}
