package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
)

type fakeTimetableRepo struct {
	entries      map[string]*models.TimetableEntry
	settings     *models.TimetableSettings
	slotsRemoved []models.TimeSlot
}

func (f *fakeTimetableRepo) CreateEntry(ctx context.Context, entry *models.TimetableEntry) error {
	if f.entries == nil {
		f.entries = make(map[string]*models.TimetableEntry)
	}
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeTimetableRepo) GetEntry(ctx context.Context, userID, id string) (*models.TimetableEntry, error) {
	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return nil, nil
	}
	return entry, nil
}

func (f *fakeTimetableRepo) ListEntries(ctx context.Context, userID string, entryType models.TimetableType) ([]models.TimetableEntry, error) {
	var out []models.TimetableEntry
	for _, entry := range f.entries {
		if entry.UserID == userID && entry.Type == entryType {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (f *fakeTimetableRepo) UpdateEntry(ctx context.Context, entry *models.TimetableEntry) error {
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeTimetableRepo) DeleteEntry(ctx context.Context, userID, id string) error {
	delete(f.entries, id)
	return nil
}

func (f *fakeTimetableRepo) GetSettings(ctx context.Context, userID string) (*models.TimetableSettings, error) {
	return f.settings, nil
}

func (f *fakeTimetableRepo) CreateSettings(ctx context.Context, settings *models.TimetableSettings) error {
	if f.settings == nil {
		f.settings = settings
	}
	return nil
}

func (f *fakeTimetableRepo) AddSlot(ctx context.Context, userID string, slot models.TimeSlot) error {
	for _, existing := range f.settings.TimeSlots {
		if existing == slot {
			return nil
		}
	}
	f.settings.TimeSlots = append(f.settings.TimeSlots, slot)
	return nil
}

func (f *fakeTimetableRepo) DeleteSlotCascade(ctx context.Context, userID string, slot models.TimeSlot) error {
	f.slotsRemoved = append(f.slotsRemoved, slot)

	kept := f.settings.TimeSlots[:0]
	for _, existing := range f.settings.TimeSlots {
		if existing != slot {
			kept = append(kept, existing)
		}
	}
	f.settings.TimeSlots = kept

	for id, entry := range f.entries {
		if entry.Type == models.TimetableLecture && entry.StartTime == slot.Start && entry.EndTime == slot.End {
			delete(f.entries, id)
		}
	}
	return nil
}

func newTimetableService(repo *fakeTimetableRepo) TimetableService {
	return NewTimetableService(repo, &recordBroadcaster{}, zerolog.Nop())
}

func TestGetSettingsSeedsDefaults(t *testing.T) {
	repo := &fakeTimetableRepo{}
	svc := newTimetableService(repo)

	settings, err := svc.GetSettings(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}

	if len(settings.TimeSlots) != 10 {
		t.Fatalf("default slots = %d, want 10", len(settings.TimeSlots))
	}
	if settings.TimeSlots[0] != (models.TimeSlot{Start: "08:00", End: "09:00"}) {
		t.Errorf("first slot = %+v, want 08:00-09:00", settings.TimeSlots[0])
	}
	if settings.TimeSlots[9] != (models.TimeSlot{Start: "17:00", End: "18:00"}) {
		t.Errorf("last slot = %+v, want 17:00-18:00", settings.TimeSlots[9])
	}
}

func TestCreateEntryValidation(t *testing.T) {
	svc := newTimetableService(&fakeTimetableRepo{})

	_, err := svc.CreateEntry(context.Background(), "u1", &models.CreateTimetableEntryRequest{
		Type:      string(models.TimetableLecture),
		StartTime: "09:00",
		EndTime:   "10:00",
		Subject:   "Physics",
	})
	if !errors.Is(err, ErrLectureNeedsDay) {
		t.Errorf("lecture without day: err = %v, want ErrLectureNeedsDay", err)
	}

	_, err = svc.CreateEntry(context.Background(), "u1", &models.CreateTimetableEntryRequest{
		Type:      string(models.TimetableWrittenExam),
		StartTime: "09:00",
		EndTime:   "10:00",
		Subject:   "Physics",
	})
	if !errors.Is(err, ErrExamNeedsDate) {
		t.Errorf("exam without date: err = %v, want ErrExamNeedsDate", err)
	}

	_, err = svc.CreateEntry(context.Background(), "u1", &models.CreateTimetableEntryRequest{
		Type:      string(models.TimetableLecture),
		Day:       "Monday",
		StartTime: "9am",
		EndTime:   "10:00",
		Subject:   "Physics",
	})
	if err == nil {
		t.Error("expected error for malformed start time")
	}
}

func TestRemoveSlotDeletesOnlyExactLectures(t *testing.T) {
	repo := &fakeTimetableRepo{
		settings: &models.TimetableSettings{
			ID:     "set1",
			UserID: "u1",
			TimeSlots: []models.TimeSlot{
				{Start: "09:00", End: "10:00"},
				{Start: "10:00", End: "11:00"},
			},
		},
		entries: map[string]*models.TimetableEntry{
			"e1": {ID: "e1", UserID: "u1", Type: models.TimetableLecture, Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
			"e2": {ID: "e2", UserID: "u1", Type: models.TimetableLecture, Day: "Tuesday", StartTime: "09:00", EndTime: "10:30"},
			"e3": {ID: "e3", UserID: "u1", Type: models.TimetableLecture, Day: "Friday", StartTime: "10:00", EndTime: "11:00"},
		},
	}
	svc := newTimetableService(repo)

	settings, err := svc.RemoveSlot(context.Background(), "u1", models.TimeSlot{Start: "09:00", End: "10:00"})
	if err != nil {
		t.Fatalf("RemoveSlot returned error: %v", err)
	}

	if len(settings.TimeSlots) != 1 {
		t.Errorf("slots left = %d, want 1", len(settings.TimeSlots))
	}
	if _, ok := repo.entries["e1"]; ok {
		t.Error("lecture in the removed slot should be deleted")
	}
	// An overlapping but not identical time range stays.
	if _, ok := repo.entries["e2"]; !ok {
		t.Error("lecture with different end time should survive")
	}
	if _, ok := repo.entries["e3"]; !ok {
		t.Error("lecture in a different slot should survive")
	}
}

func TestAddSlotIsIdempotent(t *testing.T) {
	repo := &fakeTimetableRepo{settings: &models.TimetableSettings{
		ID:        "set1",
		UserID:    "u1",
		TimeSlots: []models.TimeSlot{{Start: "08:00", End: "09:00"}},
	}}
	svc := newTimetableService(repo)

	for i := 0; i < 2; i++ {
		if _, err := svc.AddSlot(context.Background(), "u1", models.TimeSlot{Start: "18:00", End: "19:00"}); err != nil {
			t.Fatalf("AddSlot returned error: %v", err)
		}
	}

	if len(repo.settings.TimeSlots) != 2 {
		t.Errorf("slots = %d, want 2 after duplicate add", len(repo.settings.TimeSlots))
	}
}
