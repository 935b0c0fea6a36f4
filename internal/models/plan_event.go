package models

import "time"

// PlanEventType tags the two kinds of calendar rows.
type PlanEventType string

const (
	EventCourse      PlanEventType = "course"
	EventUnavailable PlanEventType = "unavailable"
)

// PlanEvent is one committed calendar row. Course events come in groups,
// one row per meeting weekday sharing a CRN; unavailable blocks are
// standalone one-off rows with a nil CRN.
type PlanEvent struct {
	ID        string        `db:"id" json:"id"`
	TermID    string        `db:"term_id" json:"term_id"`
	Type      PlanEventType `db:"type" json:"type"`
	Title     string        `db:"title" json:"title"`
	CRN       *string       `db:"crn" json:"crn,omitempty"`
	Start     time.Time     `db:"start_at" json:"start"`
	End       time.Time     `db:"end_at" json:"end"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

func (e PlanEvent) IsCourse() bool {
	return e.Type == EventCourse
}

// CRNValue returns the event's CRN or "" for unavailable blocks.
func (e PlanEvent) CRNValue() string {
	if e.CRN == nil {
		return ""
	}
	return *e.CRN
}

// Term-section statuses.
const (
	SectionStatusPlanned = "planned"
	SectionStatusDropped = "dropped"
)

// TermSection records a section's membership in a term plan.
type TermSection struct {
	CRN       string    `db:"crn" json:"crn"`
	TermID    string    `db:"term_id" json:"term_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Status    string    `db:"status" json:"status"`
	Liked     bool      `db:"liked" json:"liked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
