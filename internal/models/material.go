package models

import "time"

type MaterialType string

const (
	MaterialNotes      MaterialType = "Notes"
	MaterialPracticals MaterialType = "Practicals"
	MaterialPYQ        MaterialType = "PYQ"
)

type MaterialContentType string

const (
	MaterialContentLink MaterialContentType = "link"
	MaterialContentText MaterialContentType = "text"
)

type StudyMaterial struct {
	ID           string              `json:"id" db:"id"`
	SubjectID    string              `json:"subjectId" db:"subject_id"`
	UserID       string              `json:"userId" db:"user_id"`
	Type         MaterialType        `json:"type" db:"type"`
	ContentType  MaterialContentType `json:"contentType" db:"content_type"`
	Title        string              `json:"title" db:"title"`
	Content      string              `json:"content" db:"content"`
	IsPublic     bool                `json:"isPublic" db:"is_public"`
	UploaderName string              `json:"uploaderName" db:"uploader_name"`
	// Populated for public search results only.
	SubjectTitle string    `json:"subjectTitle,omitempty" db:"-"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
