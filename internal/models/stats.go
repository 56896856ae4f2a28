package models

import "time"

type StudySession struct {
	Date     time.Time `json:"date"`
	Duration float64   `json:"duration"` // hours
}

type UserStats struct {
	UserID          string         `json:"userId" db:"user_id"`
	StudyStreak     int            `json:"studyStreak" db:"study_streak"`
	LastStudiedDate time.Time      `json:"lastStudiedDate" db:"last_studied_date"`
	StudySessions   []StudySession `json:"studySessions" db:"study_sessions"`
}

type DayActivity struct {
	Day   string  `json:"day"`
	Hours float64 `json:"hours"`
}

// DashboardStats is derived, never persisted.
type DashboardStats struct {
	SubjectsInProgress int           `json:"subjectsInProgress"`
	AverageScore       int           `json:"averageScore"`
	StudyStreak        int           `json:"studyStreak"`
	WeeklyActivity     []DayActivity `json:"weeklyActivity"`
}
