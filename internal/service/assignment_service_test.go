package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type fakeAssignmentRepo struct {
	assignments map[string]*models.Assignment
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	if f.assignments == nil {
		f.assignments = make(map[string]*models.Assignment)
	}
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, userID, id string) (*models.Assignment, error) {
	assignment, ok := f.assignments[id]
	if !ok || assignment.UserID != userID {
		return nil, nil
	}
	return assignment, nil
}

func (f *fakeAssignmentRepo) ListByUser(ctx context.Context, userID, subjectID string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, assignment := range f.assignments {
		if assignment.UserID != userID {
			continue
		}
		if subjectID != "" && assignment.SubjectID != subjectID {
			continue
		}
		out = append(out, *assignment)
	}
	return out, nil
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, userID, id string) error {
	delete(f.assignments, id)
	return nil
}

func TestCreateAssignmentSnapshotsSubjectTitle(t *testing.T) {
	subjects := &fakeSubjectRepo{subjects: map[string]*models.Subject{
		"s1": {ID: "s1", UserID: "u1", Title: "Physics"},
	}}
	repo := &fakeAssignmentRepo{}
	svc := NewAssignmentService(repo, subjects, &recordBroadcaster{}, zerolog.Nop())

	assignment, err := svc.CreateAssignment(context.Background(), "u1", &models.CreateAssignmentRequest{
		SubjectID: "s1",
		Title:     "Problem set 3",
		DueDate:   "2026-09-15",
	})
	if err != nil {
		t.Fatalf("CreateAssignment returned error: %v", err)
	}

	if assignment.SubjectTitle != "Physics" {
		t.Errorf("SubjectTitle = %q, want Physics", assignment.SubjectTitle)
	}
	if assignment.Status != models.AssignmentPending {
		t.Errorf("Status = %q, want default Pending", assignment.Status)
	}

	// Renaming the subject must not rewrite the snapshot.
	subjects.subjects["s1"].Title = "Physics II"
	stored := repo.assignments[assignment.ID]
	if stored.SubjectTitle != "Physics" {
		t.Errorf("stored SubjectTitle = %q, want original Physics", stored.SubjectTitle)
	}
}

func TestCreateAssignmentUnknownSubject(t *testing.T) {
	svc := NewAssignmentService(&fakeAssignmentRepo{}, &fakeSubjectRepo{}, &recordBroadcaster{}, zerolog.Nop())

	_, err := svc.CreateAssignment(context.Background(), "u1", &models.CreateAssignmentRequest{
		SubjectID: "missing",
		Title:     "Essay",
		DueDate:   "2026-09-15",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateAssignmentForeignSubject(t *testing.T) {
	subjects := &fakeSubjectRepo{subjects: map[string]*models.Subject{
		"s1": {ID: "s1", UserID: "other", Title: "Physics"},
	}}
	svc := NewAssignmentService(&fakeAssignmentRepo{}, subjects, &recordBroadcaster{}, zerolog.Nop())

	_, err := svc.CreateAssignment(context.Background(), "u1", &models.CreateAssignmentRequest{
		SubjectID: "s1",
		Title:     "Essay",
		DueDate:   "2026-09-15",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("another user's subject must look missing, got err = %v", err)
	}
}

func TestUpdateAssignmentPartial(t *testing.T) {
	grade := 92.0
	repo := &fakeAssignmentRepo{assignments: map[string]*models.Assignment{
		"a1": {ID: "a1", UserID: "u1", SubjectID: "s1", Title: "Quiz", Status: models.AssignmentPending},
	}}
	svc := NewAssignmentService(repo, &fakeSubjectRepo{}, &recordBroadcaster{}, zerolog.Nop())

	status := string(models.AssignmentCompleted)
	updated, err := svc.UpdateAssignment(context.Background(), "u1", "a1", &models.UpdateAssignmentRequest{
		Status: &status,
		Grade:  &grade,
	})
	if err != nil {
		t.Fatalf("UpdateAssignment returned error: %v", err)
	}

	if updated.Status != models.AssignmentCompleted {
		t.Errorf("Status = %q, want Completed", updated.Status)
	}
	if updated.Grade == nil || *updated.Grade != 92 {
		t.Errorf("Grade = %v, want 92", updated.Grade)
	}
	if updated.Title != "Quiz" {
		t.Errorf("Title = %q, untouched field must survive", updated.Title)
	}
}
