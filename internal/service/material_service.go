package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/config"
	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/repository"
	"github.com/studytrack/studytrack-backend/internal/watch"
)

type MaterialService interface {
	CreateMaterial(ctx context.Context, userID string, req *models.CreateMaterialRequest) (*models.StudyMaterial, error)
	ListMaterials(ctx context.Context, userID, subjectID string) ([]models.StudyMaterial, error)
	DeleteMaterial(ctx context.Context, userID, id string) error
	SearchPublic(ctx context.Context, term string) ([]models.StudyMaterial, error)
}

type materialService struct {
	materialRepo repository.MaterialRepository
	subjectRepo  repository.SubjectRepository
	userRepo     repository.UserRepository
	broadcast    ChangeBroadcaster
	cfg          config.SearchConfig
	logger       zerolog.Logger
}

func NewMaterialService(materialRepo repository.MaterialRepository, subjectRepo repository.SubjectRepository, userRepo repository.UserRepository, broadcast ChangeBroadcaster, cfg config.SearchConfig, logger zerolog.Logger) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		subjectRepo:  subjectRepo,
		userRepo:     userRepo,
		broadcast:    broadcast,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *materialService) CreateMaterial(ctx context.Context, userID string, req *models.CreateMaterialRequest) (*models.StudyMaterial, error) {
	subject, err := s.subjectRepo.GetByID(ctx, userID, req.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	if subject == nil {
		return nil, ErrNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	material := &models.StudyMaterial{
		ID:           uuid.New().String(),
		SubjectID:    subject.ID,
		UserID:       userID,
		Type:         models.MaterialType(req.Type),
		ContentType:  models.MaterialContentType(req.ContentType),
		Title:        req.Title,
		Content:      req.Content,
		IsPublic:     req.IsPublic,
		UploaderName: strings.TrimSpace(user.FirstName + " " + user.LastName),
		CreatedAt:    time.Now(),
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.Info().
		Str("material_id", material.ID).
		Str("subject_id", subject.ID).
		Bool("public", material.IsPublic).
		Msg("Study material created")

	s.broadcast.Broadcast(ctx, watch.CollectionStudyMaterials, userID)
	return material, nil
}

func (s *materialService) ListMaterials(ctx context.Context, userID, subjectID string) ([]models.StudyMaterial, error) {
	materials, err := s.materialRepo.ListBySubject(ctx, userID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

func (s *materialService) DeleteMaterial(ctx context.Context, userID, id string) error {
	material, err := s.materialRepo.GetByID(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to get material: %w", err)
	}
	if material == nil {
		return ErrNotFound
	}

	if err := s.materialRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}

	s.broadcast.Broadcast(ctx, watch.CollectionStudyMaterials, userID)
	return nil
}

// SearchPublic matches the term against recent public materials. Terms
// below the minimum length return empty without touching the store, so
// keystroke-by-keystroke queries stay cheap.
func (s *materialService) SearchPublic(ctx context.Context, term string) ([]models.StudyMaterial, error) {
	term = strings.TrimSpace(term)
	if len(term) < s.cfg.MinTermLength {
		return []models.StudyMaterial{}, nil
	}

	materials, err := s.materialRepo.ListPublic(ctx, s.cfg.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list public materials: %w", err)
	}

	return FilterPublicMaterials(materials, term), nil
}

// FilterPublicMaterials keeps materials whose own title or subject title
// contains the term, case-insensitively.
func FilterPublicMaterials(materials []models.StudyMaterial, term string) []models.StudyMaterial {
	needle := strings.ToLower(term)

	matched := make([]models.StudyMaterial, 0, len(materials))
	for _, material := range materials {
		if strings.Contains(strings.ToLower(material.Title), needle) ||
			strings.Contains(strings.ToLower(material.SubjectTitle), needle) {
			matched = append(matched, material)
		}
	}
	return matched
}
