package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/config"
	"github.com/studytrack/studytrack-backend/internal/models"
)

func ptr(f float64) *float64 { return &f }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	now := day(2026, 8, 28)

	tests := []struct {
		name       string
		stats      *models.UserStats
		wantStreak int
		wantRecord bool
	}{
		{
			name:       "first visit ever",
			stats:      nil,
			wantStreak: 1,
			wantRecord: true,
		},
		{
			name:       "no prior date",
			stats:      &models.UserStats{StudyStreak: 0},
			wantStreak: 1,
			wantRecord: true,
		},
		{
			name:       "studied yesterday",
			stats:      &models.UserStats{StudyStreak: 4, LastStudiedDate: day(2026, 8, 27)},
			wantStreak: 5,
			wantRecord: true,
		},
		{
			name:       "already counted today",
			stats:      &models.UserStats{StudyStreak: 5, LastStudiedDate: day(2026, 8, 28)},
			wantStreak: 5,
			wantRecord: false,
		},
		{
			name:       "gap resets streak",
			stats:      &models.UserStats{StudyStreak: 9, LastStudiedDate: day(2026, 8, 25)},
			wantStreak: 1,
			wantRecord: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak, record := NextStreak(tt.stats, now)
			if streak != tt.wantStreak || record != tt.wantRecord {
				t.Errorf("NextStreak = (%d, %v), want (%d, %v)", streak, record, tt.wantStreak, tt.wantRecord)
			}
		})
	}
}

func TestComputeDashboardStatsAverageScore(t *testing.T) {
	now := day(2026, 8, 28)

	assignments := []models.Assignment{
		{Status: models.AssignmentCompleted, Grade: ptr(80)},
		{Status: models.AssignmentCompleted, Grade: ptr(90)},
		{Status: models.AssignmentCompleted, Grade: nil},
		{Status: models.AssignmentPending, Grade: ptr(70)},
	}

	got := ComputeDashboardStats(3, assignments, nil, now)

	if got.SubjectsInProgress != 3 {
		t.Errorf("SubjectsInProgress = %d, want 3", got.SubjectsInProgress)
	}
	// Only completed assignments with a grade count: (80+90)/2.
	if got.AverageScore != 85 {
		t.Errorf("AverageScore = %d, want 85", got.AverageScore)
	}
	if got.StudyStreak != 0 {
		t.Errorf("StudyStreak = %d, want 0 without stats", got.StudyStreak)
	}
}

func TestComputeDashboardStatsNoGrades(t *testing.T) {
	got := ComputeDashboardStats(0, nil, nil, day(2026, 8, 28))
	if got.AverageScore != 0 {
		t.Errorf("AverageScore = %d, want 0 with no graded assignments", got.AverageScore)
	}
}

func TestComputeDashboardStatsWeeklyActivity(t *testing.T) {
	now := day(2026, 8, 28)

	stats := &models.UserStats{
		StudyStreak: 3,
		StudySessions: []models.StudySession{
			{Date: now, Duration: 1},
			{Date: now.AddDate(0, 0, -6), Duration: 2},
			{Date: now.AddDate(0, 0, -6), Duration: 0.5},
			{Date: now.AddDate(0, 0, -7), Duration: 4}, // outside the window
		},
	}

	got := ComputeDashboardStats(1, nil, stats, now)

	if len(got.WeeklyActivity) != 7 {
		t.Fatalf("WeeklyActivity length = %d, want 7", len(got.WeeklyActivity))
	}
	if got.WeeklyActivity[0].Hours != 2.5 {
		t.Errorf("oldest bucket hours = %v, want 2.5", got.WeeklyActivity[0].Hours)
	}
	if got.WeeklyActivity[6].Hours != 1 {
		t.Errorf("today bucket hours = %v, want 1", got.WeeklyActivity[6].Hours)
	}
	if got.WeeklyActivity[6].Day != "Fri" {
		t.Errorf("today label = %q, want Fri", got.WeeklyActivity[6].Day)
	}
	if got.StudyStreak != 3 {
		t.Errorf("StudyStreak = %d, want 3", got.StudyStreak)
	}
}

type fakeStatsRepo struct {
	stats    *models.UserStats
	recorded bool
}

func (f *fakeStatsRepo) Get(ctx context.Context, userID string) (*models.UserStats, error) {
	return f.stats, nil
}

func (f *fakeStatsRepo) RecordVisit(ctx context.Context, userID string, streak int, session models.StudySession) (bool, error) {
	f.recorded = true
	f.stats = &models.UserStats{
		UserID:          userID,
		StudyStreak:     streak,
		LastStudiedDate: session.Date,
		StudySessions:   append(sessionsOf(f.stats), session),
	}
	return true, nil
}

func sessionsOf(s *models.UserStats) []models.StudySession {
	if s == nil {
		return nil
	}
	return s.StudySessions
}

type recordBroadcaster struct {
	collections []string
}

func (b *recordBroadcaster) Broadcast(ctx context.Context, collection, userID string) {
	b.collections = append(b.collections, collection)
}

func TestRecordVisitSameDayNoop(t *testing.T) {
	repo := &fakeStatsRepo{stats: &models.UserStats{
		UserID:          "u1",
		StudyStreak:     2,
		LastStudiedDate: time.Now(),
	}}
	broadcast := &recordBroadcaster{}

	svc := NewStatsService(repo, nil, nil, broadcast, config.StatsConfig{SessionHours: 1}, zerolog.Nop())

	stats, err := svc.RecordVisit(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecordVisit returned error: %v", err)
	}
	if repo.recorded {
		t.Error("visit on an already-counted day should not write")
	}
	if stats.StudyStreak != 2 {
		t.Errorf("streak = %d, want unchanged 2", stats.StudyStreak)
	}
	if len(broadcast.collections) != 0 {
		t.Error("no-op visit should not broadcast")
	}
}

func TestRecordVisitExtendsStreak(t *testing.T) {
	repo := &fakeStatsRepo{stats: &models.UserStats{
		UserID:          "u1",
		StudyStreak:     2,
		LastStudiedDate: time.Now().AddDate(0, 0, -1),
	}}
	broadcast := &recordBroadcaster{}

	svc := NewStatsService(repo, nil, nil, broadcast, config.StatsConfig{SessionHours: 1}, zerolog.Nop())

	stats, err := svc.RecordVisit(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecordVisit returned error: %v", err)
	}
	if stats.StudyStreak != 3 {
		t.Errorf("streak = %d, want 3", stats.StudyStreak)
	}
	if len(broadcast.collections) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(broadcast.collections))
	}
}
