package models

import "time"

type TimetableType string

const (
	TimetableLecture       TimetableType = "lecture"
	TimetableWrittenExam   TimetableType = "written_exam"
	TimetablePracticalExam TimetableType = "practical_exam"
)

// TimetableEntry is either a recurring weekly lecture (Day set, Date nil)
// or an exam pinned to an absolute date (Date set).
type TimetableEntry struct {
	ID        string        `json:"id" db:"id"`
	UserID    string        `json:"userId" db:"user_id"`
	Type      TimetableType `json:"type" db:"type"`
	Day       string        `json:"day,omitempty" db:"day"`
	Date      *time.Time    `json:"date,omitempty" db:"date"`
	StartTime string        `json:"startTime" db:"start_time"`
	EndTime   string        `json:"endTime" db:"end_time"`
	Subject   string        `json:"subject" db:"subject"`
	Details   string        `json:"details" db:"details"`
}

// TimeSlot is a value-typed member of the settings slot set, matched by
// the (start, end) pair rather than an id.
type TimeSlot struct {
	Start string `json:"start" validate:"required,len=5"`
	End   string `json:"end" validate:"required,len=5"`
}

type TimetableSettings struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"userId" db:"user_id"`
	TimeSlots []TimeSlot `json:"timeSlots" db:"time_slots"`
}

// DefaultTimeSlots is the ten-slot 08:00-18:00 grid created on first access.
func DefaultTimeSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, 10)
	for h := 8; h < 18; h++ {
		slots = append(slots, TimeSlot{
			Start: formatHour(h),
			End:   formatHour(h + 1),
		})
	}
	return slots
}

func formatHour(h int) string {
	return time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04")
}
