package models

import "time"

type Feedback struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Feedback  string    `json:"feedback" db:"feedback"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
