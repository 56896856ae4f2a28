package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/repository"
	"github.com/studytrack/studytrack-backend/internal/watch"
	"github.com/studytrack/studytrack-backend/pkg/timeutil"
)

var (
	ErrLectureNeedsDay = errors.New("lecture entries require a weekday")
	ErrExamNeedsDate   = errors.New("exam entries require a date")
)

type TimetableService interface {
	CreateEntry(ctx context.Context, userID string, req *models.CreateTimetableEntryRequest) (*models.TimetableEntry, error)
	ListEntries(ctx context.Context, userID string, entryType models.TimetableType) ([]models.TimetableEntry, error)
	UpdateEntry(ctx context.Context, userID, id string, req *models.UpdateTimetableEntryRequest) (*models.TimetableEntry, error)
	DeleteEntry(ctx context.Context, userID, id string) error

	GetSettings(ctx context.Context, userID string) (*models.TimetableSettings, error)
	AddSlot(ctx context.Context, userID string, slot models.TimeSlot) (*models.TimetableSettings, error)
	RemoveSlot(ctx context.Context, userID string, slot models.TimeSlot) (*models.TimetableSettings, error)
}

type timetableService struct {
	timetableRepo repository.TimetableRepository
	broadcast     ChangeBroadcaster
	logger        zerolog.Logger
}

func NewTimetableService(timetableRepo repository.TimetableRepository, broadcast ChangeBroadcaster, logger zerolog.Logger) TimetableService {
	return &timetableService{
		timetableRepo: timetableRepo,
		broadcast:     broadcast,
		logger:        logger,
	}
}

func (s *timetableService) CreateEntry(ctx context.Context, userID string, req *models.CreateTimetableEntryRequest) (*models.TimetableEntry, error) {
	entryType := models.TimetableType(req.Type)

	entry := &models.TimetableEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      entryType,
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Subject:   req.Subject,
		Details:   req.Details,
	}

	if err := validateClockPair(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	switch entryType {
	case models.TimetableLecture:
		if req.Day == "" {
			return nil, ErrLectureNeedsDay
		}
	default:
		if req.Date == "" {
			return nil, ErrExamNeedsDate
		}
		date, err := timeutil.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		entry.Date = &date
	}

	if err := s.timetableRepo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create timetable entry: %w", err)
	}

	s.broadcast.Broadcast(ctx, watch.CollectionTimetableEntries, userID)
	return entry, nil
}

func (s *timetableService) ListEntries(ctx context.Context, userID string, entryType models.TimetableType) ([]models.TimetableEntry, error) {
	entries, err := s.timetableRepo.ListEntries(ctx, userID, entryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list timetable entries: %w", err)
	}
	return entries, nil
}

func (s *timetableService) UpdateEntry(ctx context.Context, userID, id string, req *models.UpdateTimetableEntryRequest) (*models.TimetableEntry, error) {
	entry, err := s.timetableRepo.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get timetable entry: %w", err)
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	if req.Day != nil {
		entry.Day = *req.Day
	}
	if req.Date != nil {
		if *req.Date == "" {
			entry.Date = nil
		} else {
			date, err := timeutil.ParseDate(*req.Date)
			if err != nil {
				return nil, err
			}
			entry.Date = &date
		}
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = *req.EndTime
	}
	if req.Subject != nil {
		entry.Subject = *req.Subject
	}
	if req.Details != nil {
		entry.Details = *req.Details
	}

	if err := validateClockPair(entry.StartTime, entry.EndTime); err != nil {
		return nil, err
	}

	if err := s.timetableRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update timetable entry: %w", err)
	}

	s.broadcast.Broadcast(ctx, watch.CollectionTimetableEntries, userID)
	return entry, nil
}

func (s *timetableService) DeleteEntry(ctx context.Context, userID, id string) error {
	entry, err := s.timetableRepo.GetEntry(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to get timetable entry: %w", err)
	}
	if entry == nil {
		return ErrNotFound
	}

	if err := s.timetableRepo.DeleteEntry(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete timetable entry: %w", err)
	}

	s.broadcast.Broadcast(ctx, watch.CollectionTimetableEntries, userID)
	return nil
}

// GetSettings returns the user's slot grid, seeding the default
// 08:00-18:00 grid on first access.
func (s *timetableService) GetSettings(ctx context.Context, userID string) (*models.TimetableSettings, error) {
	settings, err := s.timetableRepo.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get timetable settings: %w", err)
	}
	if settings != nil {
		return settings, nil
	}

	settings = &models.TimetableSettings{
		ID:        uuid.New().String(),
		UserID:    userID,
		TimeSlots: models.DefaultTimeSlots(),
	}
	if err := s.timetableRepo.CreateSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to create timetable settings: %w", err)
	}

	// A concurrent first access may have won the insert; reread so both
	// callers see the same stored grid.
	stored, err := s.timetableRepo.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get timetable settings: %w", err)
	}
	if stored != nil {
		return stored, nil
	}
	return settings, nil
}

// AddSlot unions the slot into the grid. Adding a slot that is already
// present is a no-op.
func (s *timetableService) AddSlot(ctx context.Context, userID string, slot models.TimeSlot) (*models.TimetableSettings, error) {
	if err := validateClockPair(slot.Start, slot.End); err != nil {
		return nil, err
	}

	if _, err := s.GetSettings(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.timetableRepo.AddSlot(ctx, userID, slot); err != nil {
		return nil, fmt.Errorf("failed to add time slot: %w", err)
	}

	s.broadcast.Broadcast(ctx, watch.CollectionTimetableSettings, userID)
	return s.timetableRepo.GetSettings(ctx, userID)
}

// RemoveSlot drops the slot from the grid and deletes the lectures
// scheduled in it, atomically.
func (s *timetableService) RemoveSlot(ctx context.Context, userID string, slot models.TimeSlot) (*models.TimetableSettings, error) {
	if _, err := s.GetSettings(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.timetableRepo.DeleteSlotCascade(ctx, userID, slot); err != nil {
		return nil, fmt.Errorf("failed to remove time slot: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("start", slot.Start).
		Str("end", slot.End).
		Msg("Time slot removed with its lectures")

	s.broadcast.Broadcast(ctx, watch.CollectionTimetableSettings, userID)
	s.broadcast.Broadcast(ctx, watch.CollectionTimetableEntries, userID)
	return s.timetableRepo.GetSettings(ctx, userID)
}

func validateClockPair(start, end string) error {
	if _, _, err := timeutil.ParseClock(start); err != nil {
		return err
	}
	if _, _, err := timeutil.ParseClock(end); err != nil {
		return err
	}
	return nil
}
