package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/repository"
)

type FeedbackService interface {
	SubmitFeedback(ctx context.Context, req *models.CreateFeedbackRequest) (*models.Feedback, error)
	ListRecent(ctx context.Context, limit int) ([]models.Feedback, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	logger       zerolog.Logger
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

func (s *feedbackService) SubmitFeedback(ctx context.Context, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	feedback := &models.Feedback{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Feedback:  req.Feedback,
		CreatedAt: time.Now(),
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.logger.Info().Str("feedback_id", feedback.ID).Msg("Feedback submitted")
	return feedback, nil
}

func (s *feedbackService) ListRecent(ctx context.Context, limit int) ([]models.Feedback, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := s.feedbackRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return entries, nil
}
