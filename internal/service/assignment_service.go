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
	"github.com/studytrack/studytrack-backend/pkg/timeutil"
)

type AssignmentService interface {
	CreateAssignment(ctx context.Context, userID string, req *models.CreateAssignmentRequest) (*models.Assignment, error)
	ListAssignments(ctx context.Context, userID, subjectID string) ([]models.Assignment, error)
	UpdateAssignment(ctx context.Context, userID, id string, req *models.UpdateAssignmentRequest) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, userID, id string) error
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	subjectRepo    repository.SubjectRepository
	broadcast      ChangeBroadcaster
	logger         zerolog.Logger
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository, subjectRepo repository.SubjectRepository, broadcast ChangeBroadcaster, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		subjectRepo:    subjectRepo,
		broadcast:      broadcast,
		logger:         logger,
	}
}

// CreateAssignment snapshots the subject title onto the assignment so
// listings never need a join. A rename of the subject leaves existing
// assignments with the old title.
func (s *assignmentService) CreateAssignment(ctx context.Context, userID string, req *models.CreateAssignmentRequest) (*models.Assignment, error) {
	subject, err := s.subjectRepo.GetByID(ctx, userID, req.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	if subject == nil {
		return nil, ErrNotFound
	}

	dueDate, err := timeutil.ParseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	status := models.AssignmentStatus(req.Status)
	if status == "" {
		status = models.AssignmentPending
	}

	assignment := &models.Assignment{
		ID:           uuid.New().String(),
		SubjectID:    subject.ID,
		UserID:       userID,
		Title:        req.Title,
		DueDate:      dueDate,
		Status:       status,
		Grade:        req.Grade,
		SubjectTitle: subject.Title,
		CreatedAt:    time.Now(),
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID).
		Str("subject_id", subject.ID).
		Str("user_id", userID).
		Msg("Assignment created")

	s.broadcast.Broadcast(ctx, watch.CollectionAssignments, userID)
	return assignment, nil
}

func (s *assignmentService) ListAssignments(ctx context.Context, userID, subjectID string) ([]models.Assignment, error) {
	assignments, err := s.assignmentRepo.ListByUser(ctx, userID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) UpdateAssignment(ctx context.Context, userID, id string, req *models.UpdateAssignmentRequest) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, ErrNotFound
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.DueDate != nil {
		dueDate, err := timeutil.ParseDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		assignment.DueDate = dueDate
	}
	if req.Status != nil {
		assignment.Status = models.AssignmentStatus(*req.Status)
	}
	if req.Grade != nil {
		assignment.Grade = req.Grade
	}

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	s.broadcast.Broadcast(ctx, watch.CollectionAssignments, userID)
	return assignment, nil
}

func (s *assignmentService) DeleteAssignment(ctx context.Context, userID, id string) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return ErrNotFound
	}

	if err := s.assignmentRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.broadcast.Broadcast(ctx, watch.CollectionAssignments, userID)
	return nil
}
