package dto

import "time"

// CalendarEvent is a calendar row shaped for week-grid rendering.
// Course events are recurring: they carry wall-clock times, weekday
// indices (Sunday = 0), and the recurrence window. Unavailable blocks
// are one-off and carry concrete instants instead.
type CalendarEvent struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	CRN         *string    `json:"crn,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
	DaysOfWeek  []int      `json:"days_of_week,omitempty"`
	StartRecur  *time.Time `json:"start_recur,omitempty"`
	EndRecur    *time.Time `json:"end_recur,omitempty"`
	Editable    bool       `json:"editable"`
	HasConflict bool       `json:"has_conflict"`
}

// CalendarResponse is the full calendar payload for a term.
type CalendarResponse struct {
	TermID string          `json:"term_id"`
	Events []CalendarEvent `json:"events"`
}
