package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/config"
	"github.com/studytrack/studytrack-backend/internal/models"
)

type fakeMaterialRepo struct {
	public      []models.StudyMaterial
	publicCalls int
}

func (f *fakeMaterialRepo) Create(ctx context.Context, material *models.StudyMaterial) error {
	return nil
}

func (f *fakeMaterialRepo) GetByID(ctx context.Context, userID, id string) (*models.StudyMaterial, error) {
	return nil, nil
}

func (f *fakeMaterialRepo) ListBySubject(ctx context.Context, userID, subjectID string) ([]models.StudyMaterial, error) {
	return nil, nil
}

func (f *fakeMaterialRepo) Delete(ctx context.Context, userID, id string) error {
	return nil
}

func (f *fakeMaterialRepo) ListPublic(ctx context.Context, limit int) ([]models.StudyMaterial, error) {
	f.publicCalls++
	if limit < len(f.public) {
		return f.public[:limit], nil
	}
	return f.public, nil
}

func newSearchService(repo *fakeMaterialRepo) MaterialService {
	cfg := config.SearchConfig{MinTermLength: 3, Limit: 20}
	return NewMaterialService(repo, nil, nil, &recordBroadcaster{}, cfg, zerolog.Nop())
}

func TestSearchPublicShortTermSkipsStore(t *testing.T) {
	repo := &fakeMaterialRepo{public: []models.StudyMaterial{{Title: "Physics Notes"}}}
	svc := newSearchService(repo)

	for _, term := range []string{"", "ph", "  p  "} {
		got, err := svc.SearchPublic(context.Background(), term)
		if err != nil {
			t.Fatalf("SearchPublic(%q) returned error: %v", term, err)
		}
		if len(got) != 0 {
			t.Errorf("SearchPublic(%q) = %d results, want 0", term, len(got))
		}
	}

	if repo.publicCalls != 0 {
		t.Errorf("short terms hit the store %d times, want 0", repo.publicCalls)
	}
}

func TestSearchPublicMatchesTitleAndSubject(t *testing.T) {
	repo := &fakeMaterialRepo{public: []models.StudyMaterial{
		{Title: "Physics Notes", SubjectTitle: "Physics"},
		{Title: "Lab Manual", SubjectTitle: "Physics"},
		{Title: "Algebra PYQ", SubjectTitle: "Mathematics"},
	}}
	svc := newSearchService(repo)

	got, err := svc.SearchPublic(context.Background(), "PHY")
	if err != nil {
		t.Fatalf("SearchPublic returned error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Title != "Physics Notes" || got[1].Title != "Lab Manual" {
		t.Errorf("unexpected results: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestFilterPublicMaterials(t *testing.T) {
	materials := []models.StudyMaterial{
		{Title: "Thermodynamics", SubjectTitle: "Physics"},
		{Title: "chemistry basics", SubjectTitle: "Chemistry"},
	}

	tests := []struct {
		term string
		want int
	}{
		{term: "thermo", want: 1},
		{term: "CHEM", want: 1},
		{term: "history", want: 0},
	}

	for _, tt := range tests {
		if got := FilterPublicMaterials(materials, tt.term); len(got) != tt.want {
			t.Errorf("FilterPublicMaterials(%q) = %d results, want %d", tt.term, len(got), tt.want)
		}
	}
}
