package models

// ConflictType classifies why a course cannot sit cleanly on a schedule.
type ConflictType string

const (
	ConflictDuplicate          ConflictType = "duplicate"
	ConflictOverlap            ConflictType = "overlap"
	ConflictUnavailableOverlap ConflictType = "unavailable-overlap"
	ConflictMissingCorequisite ConflictType = "missing-corequisite"
)

// ConflictDetail names one counterpart involved in a conflict: the
// overlapping CRN, the blocking unavailable event, or the missing
// corequisite course.
type ConflictDetail struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConflictRecord is one course's conflicts of a single type.
type ConflictRecord struct {
	Type       ConflictType     `json:"type"`
	CourseID   string           `json:"course_id"`
	CourseName string           `json:"course_name"`
	Details    []ConflictDetail `json:"details"`
}
