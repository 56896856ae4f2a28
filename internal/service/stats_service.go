package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/config"
	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/repository"
	"github.com/studytrack/studytrack-backend/internal/watch"
	"github.com/studytrack/studytrack-backend/pkg/timeutil"
)

type StatsService interface {
	GetDashboard(ctx context.Context, userID string) (*models.DashboardStats, error)
	RecordVisit(ctx context.Context, userID string) (*models.UserStats, error)
}

type statsService struct {
	statsRepo      repository.StatsRepository
	subjectRepo    repository.SubjectRepository
	assignmentRepo repository.AssignmentRepository
	broadcast      ChangeBroadcaster
	sessionHours   float64
	now            func() time.Time
	logger         zerolog.Logger
}

func NewStatsService(statsRepo repository.StatsRepository, subjectRepo repository.SubjectRepository, assignmentRepo repository.AssignmentRepository, broadcast ChangeBroadcaster, cfg config.StatsConfig, logger zerolog.Logger) StatsService {
	return &statsService{
		statsRepo:      statsRepo,
		subjectRepo:    subjectRepo,
		assignmentRepo: assignmentRepo,
		broadcast:      broadcast,
		sessionHours:   cfg.SessionHours,
		now:            time.Now,
		logger:         logger,
	}
}

func (s *statsService) GetDashboard(ctx context.Context, userID string) (*models.DashboardStats, error) {
	subjectCount, err := s.subjectRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count subjects: %w", err)
	}

	assignments, err := s.assignmentRepo.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	stats, err := s.statsRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	dashboard := ComputeDashboardStats(subjectCount, assignments, stats, s.now())
	return &dashboard, nil
}

// RecordVisit marks today as studied: the streak grows when yesterday was
// studied too, restarts at one otherwise, and never moves twice on the
// same day. The conditional write in the store keeps concurrent visits
// from double-counting.
func (s *statsService) RecordVisit(ctx context.Context, userID string) (*models.UserStats, error) {
	stats, err := s.statsRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	now := s.now()
	streak, record := NextStreak(stats, now)
	if record {
		session := models.StudySession{Date: now, Duration: s.sessionHours}
		written, err := s.statsRepo.RecordVisit(ctx, userID, streak, session)
		if err != nil {
			return nil, fmt.Errorf("failed to record visit: %w", err)
		}
		if written {
			s.logger.Debug().
				Str("user_id", userID).
				Int("streak", streak).
				Msg("Study visit recorded")
			s.broadcast.Broadcast(ctx, watch.CollectionUserStats, userID)
		}
	}

	updated, err := s.statsRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	return updated, nil
}

// NextStreak decides the streak value a visit at now should store.
// record is false when today is already counted.
func NextStreak(stats *models.UserStats, now time.Time) (streak int, record bool) {
	if stats == nil || stats.LastStudiedDate.IsZero() {
		return 1, true
	}
	if timeutil.SameDay(stats.LastStudiedDate, now) {
		return stats.StudyStreak, false
	}
	if timeutil.IsYesterday(stats.LastStudiedDate, now) {
		return stats.StudyStreak + 1, true
	}
	return 1, true
}

// ComputeDashboardStats derives the dashboard from raw records. The
// average score covers completed assignments with a grade; the weekly
// activity spans the seven calendar days ending today, oldest first.
func ComputeDashboardStats(subjectCount int, assignments []models.Assignment, stats *models.UserStats, now time.Time) models.DashboardStats {
	dashboard := models.DashboardStats{
		SubjectsInProgress: subjectCount,
		WeeklyActivity:     weeklyActivity(stats, now),
	}

	var sum float64
	var graded int
	for _, assignment := range assignments {
		if assignment.Status == models.AssignmentCompleted && assignment.Grade != nil {
			sum += *assignment.Grade
			graded++
		}
	}
	if graded > 0 {
		dashboard.AverageScore = int(math.Round(sum / float64(graded)))
	}

	if stats != nil {
		dashboard.StudyStreak = stats.StudyStreak
	}

	return dashboard
}

func weeklyActivity(stats *models.UserStats, now time.Time) []models.DayActivity {
	activity := make([]models.DayActivity, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6)
		activity[i] = models.DayActivity{Day: day.Format("Mon")}
	}

	if stats == nil {
		return activity
	}

	for _, session := range stats.StudySessions {
		offset := timeutil.DaysBetween(session.Date, now)
		if offset < 0 || offset > 6 {
			continue
		}
		activity[6-offset].Hours += session.Duration
	}

	return activity
}
