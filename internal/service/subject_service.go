package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/repository"
	"github.com/studytrack/studytrack-backend/internal/watch"
)

type SubjectService interface {
	CreateSubject(ctx context.Context, userID string, req *models.CreateSubjectRequest) (*models.Subject, error)
	GetSubject(ctx context.Context, userID, id string) (*models.Subject, error)
	ListSubjects(ctx context.Context, userID string) ([]models.Subject, error)
	UpdateSubject(ctx context.Context, userID, id string, req *models.CreateSubjectRequest) (*models.Subject, error)
	DeleteSubject(ctx context.Context, userID, id string) error
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
	broadcast   ChangeBroadcaster
	logger      zerolog.Logger
}

func NewSubjectService(subjectRepo repository.SubjectRepository, broadcast ChangeBroadcaster, logger zerolog.Logger) SubjectService {
	return &subjectService{
		subjectRepo: subjectRepo,
		broadcast:   broadcast,
		logger:      logger,
	}
}

func (s *subjectService) CreateSubject(ctx context.Context, userID string, req *models.CreateSubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      req.Title,
		Instructor: req.Instructor,
		CreatedAt:  time.Now(),
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	s.logger.Info().
		Str("subject_id", subject.ID).
		Str("user_id", userID).
		Msg("Subject created")

	s.broadcast.Broadcast(ctx, watch.CollectionSubjects, userID)
	return subject, nil
}

func (s *subjectService) GetSubject(ctx context.Context, userID, id string) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	if subject == nil {
		return nil, ErrNotFound
	}
	return subject, nil
}

func (s *subjectService) ListSubjects(ctx context.Context, userID string) ([]models.Subject, error) {
	subjects, err := s.subjectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *subjectService) UpdateSubject(ctx context.Context, userID, id string, req *models.CreateSubjectRequest) (*models.Subject, error) {
	subject, err := s.GetSubject(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	subject.Title = req.Title
	subject.Instructor = req.Instructor

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}

	s.broadcast.Broadcast(ctx, watch.CollectionSubjects, userID)
	return subject, nil
}

// DeleteSubject removes the subject and everything hanging off it in one
// transaction, then announces every collection the cascade touched.
func (s *subjectService) DeleteSubject(ctx context.Context, userID, id string) error {
	deleted, err := s.subjectRepo.DeleteCascade(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.logger.Info().
		Str("subject_id", id).
		Str("user_id", userID).
		Msg("Subject deleted with dependents")

	s.broadcast.Broadcast(ctx, watch.CollectionSubjects, userID)
	s.broadcast.Broadcast(ctx, watch.CollectionAssignments, userID)
	s.broadcast.Broadcast(ctx, watch.CollectionStudyMaterials, userID)
	return nil
}
