package models

import "time"

type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "Pending"
	AssignmentCompleted AssignmentStatus = "Completed"
)

type Assignment struct {
	ID        string           `json:"id" db:"id"`
	SubjectID string           `json:"subjectId" db:"subject_id"`
	UserID    string           `json:"userId" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	DueDate   time.Time        `json:"dueDate" db:"due_date"`
	Status    AssignmentStatus `json:"status" db:"status"`
	Grade     *float64         `json:"grade" db:"grade"`
	// Copied from the subject at write time; not refreshed on rename.
	SubjectTitle string    `json:"subjectTitle" db:"subject_title"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
