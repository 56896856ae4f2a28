package models

import "time"

type Subject struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	Instructor string    `json:"instructor" db:"instructor"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
