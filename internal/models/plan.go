package models

import "time"

// StudyPlanEvent is a saved session from an accepted AI study plan.
// It references a subject and is removed by the subject cascade delete.
type StudyPlanEvent struct {
	ID          string    `json:"id" db:"id"`
	SubjectID   string    `json:"subjectId" db:"subject_id"`
	UserID      string    `json:"userId" db:"user_id"`
	Day         string    `json:"day" db:"day"`
	Time        string    `json:"time" db:"time"`
	Topic       string    `json:"topic" db:"topic"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
