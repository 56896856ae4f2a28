package models

import "time"

type Profession string

const (
	ProfessionStudent Profession = "student"
	ProfessionTeacher Profession = "teacher"
)

type User struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"firstName" db:"first_name"`
	LastName     string     `json:"lastName" db:"last_name"`
	Profession   Profession `json:"profession" db:"profession"`
	ClassName    string     `json:"className,omitempty" db:"class_name"`
	CollegeName  string     `json:"collegeName,omitempty" db:"college_name"`
	PhotoURL     string     `json:"photoUrl,omitempty" db:"photo_url"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}
