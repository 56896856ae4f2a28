package httpd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/watch"
)

type stubMaterials struct {
	searched string
}

func (s *stubMaterials) CreateMaterial(ctx context.Context, userID string, req *models.CreateMaterialRequest) (*models.StudyMaterial, error) {
	return &models.StudyMaterial{}, nil
}

func (s *stubMaterials) ListMaterials(ctx context.Context, userID, subjectID string) ([]models.StudyMaterial, error) {
	return nil, nil
}

func (s *stubMaterials) DeleteMaterial(ctx context.Context, userID, id string) error {
	return nil
}

func (s *stubMaterials) SearchPublic(ctx context.Context, term string) ([]models.StudyMaterial, error) {
	s.searched = term
	return []models.StudyMaterial{{Title: "Physics Notes"}}, nil
}

type stubFeedback struct{}

func (stubFeedback) SubmitFeedback(ctx context.Context, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	return &models.Feedback{Name: req.Name}, nil
}

func (stubFeedback) ListRecent(ctx context.Context, limit int) ([]models.Feedback, error) {
	return []models.Feedback{{Name: "Asha"}}, nil
}

func newTestRouter(materials *stubMaterials) http.Handler {
	h := NewHandler(
		stubAuth{acceptToken: "good-token", userID: "u1"},
		nil, nil, nil,
		materials,
		nil, nil, nil,
		stubFeedback{},
		nil,
		watch.NewHub(zerolog.Nop()),
		validator.New(),
		zerolog.Nop(),
	)

	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func TestPublicSearchNeedsNoToken(t *testing.T) {
	materials := &stubMaterials{}
	router := newTestRouter(materials)

	req := httptest.NewRequest("GET", "/api/v1/materials/public?q=phy", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous public search status = %d, want 200", rec.Code)
	}
	if materials.searched != "phy" {
		t.Errorf("searched term = %q, want phy", materials.searched)
	}
	if !strings.Contains(rec.Body.String(), "Physics Notes") {
		t.Errorf("body should carry the results, got %s", rec.Body.String())
	}
}

func TestOwnedMaterialRoutesStillRequireToken(t *testing.T) {
	router := newTestRouter(&stubMaterials{})

	for _, tt := range []struct{ method, path string }{
		{method: "GET", path: "/api/v1/materials?subjectId=s1"},
		{method: "POST", path: "/api/v1/materials"},
		{method: "DELETE", path: "/api/v1/materials/m1"},
	} {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", tt.method, tt.path, rec.Code)
		}
	}
}

func TestFeedbackListingNeedsNoToken(t *testing.T) {
	router := newTestRouter(&stubMaterials{})

	req := httptest.NewRequest("GET", "/api/v1/feedback", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous feedback listing status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Asha") {
		t.Errorf("body should carry the entries, got %s", rec.Body.String())
	}
}

func TestLogout(t *testing.T) {
	router := newTestRouter(&stubMaterials{})

	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", rec.Code)
	}
}
