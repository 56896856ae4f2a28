package models

import "time"

// ChangeEvent announces that documents in a collection changed for a user.
// Subscribers reload the full snapshot; no per-document diff is carried.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	UserID     string    `json:"user_id"`
	InstanceID string    `json:"instance_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
