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

// PlanService persists study-plan sessions the user accepted from a
// generated plan.
type PlanService interface {
	SaveEvent(ctx context.Context, userID string, req *models.SavePlanRequest) (*models.StudyPlanEvent, error)
	ListEvents(ctx context.Context, userID string) ([]models.StudyPlanEvent, error)
	DeleteEvent(ctx context.Context, userID, id string) error
}

type planService struct {
	planRepo    repository.PlanRepository
	subjectRepo repository.SubjectRepository
	logger      zerolog.Logger
}

func NewPlanService(planRepo repository.PlanRepository, subjectRepo repository.SubjectRepository, logger zerolog.Logger) PlanService {
	return &planService{
		planRepo:    planRepo,
		subjectRepo: subjectRepo,
		logger:      logger,
	}
}

func (s *planService) SaveEvent(ctx context.Context, userID string, req *models.SavePlanRequest) (*models.StudyPlanEvent, error) {
	subject, err := s.subjectRepo.GetByID(ctx, userID, req.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	if subject == nil {
		return nil, ErrNotFound
	}

	event := &models.StudyPlanEvent{
		ID:          uuid.New().String(),
		SubjectID:   subject.ID,
		UserID:      userID,
		Day:         req.Day,
		Time:        req.Time,
		Topic:       req.Topic,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.planRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save plan event: %w", err)
	}

	s.logger.Info().
		Str("event_id", event.ID).
		Str("subject_id", subject.ID).
		Msg("Study plan event saved")

	return event, nil
}

func (s *planService) ListEvents(ctx context.Context, userID string) ([]models.StudyPlanEvent, error) {
	events, err := s.planRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan events: %w", err)
	}
	return events, nil
}

func (s *planService) DeleteEvent(ctx context.Context, userID, id string) error {
	if err := s.planRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete plan event: %w", err)
	}
	return nil
}
