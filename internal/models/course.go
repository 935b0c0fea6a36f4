package models

import "time"

// Course is the catalog-level record a section belongs to. Completed
// courses satisfy corequisite requirements without being scheduled.
type Course struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Title     string    `db:"title" json:"title"`
	Credits   *float64  `db:"credits" json:"credits,omitempty"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Corequisite links a course to another course that must be scheduled
// alongside it or already completed.
type Corequisite struct {
	CourseID  string `db:"course_id" json:"course_id"`
	CoreqID   string `db:"coreq_id" json:"coreq_id"`
	CoreqName string `db:"coreq_name" json:"coreq_name"`
}
