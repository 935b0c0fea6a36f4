package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Instructor is the subset of instructor data carried on a section row.
type Instructor struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	AvgDifficulty *float64 `json:"avg_difficulty,omitempty"`
	AvgRating     *float64 `json:"avg_rating,omitempty"`
}

// StringList is a JSONB-backed list of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// InstructorList is a JSONB-backed list of instructors.
type InstructorList []Instructor

func (l InstructorList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *InstructorList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported scan type %T", src)
	}
}

// Section is one offering of a course in a term, ingested from the
// upstream catalog and keyed by CRN.
type Section struct {
	CRN               string         `db:"crn" json:"crn"`
	CourseID          string         `db:"course_id" json:"course_id"`
	Course            string         `db:"course" json:"course"`
	Title             string         `db:"title" json:"title"`
	Credits           *float64       `db:"credits" json:"credits,omitempty"`
	InstructionMethod string         `db:"instruction_method" json:"instruction_method"`
	InstructionType   string         `db:"instruction_type" json:"instruction_type"`
	Term              string         `db:"term" json:"term"`
	Days              StringList     `db:"days" json:"days"`
	StartTime         *string        `db:"start_time" json:"start_time,omitempty"`
	EndTime           *string        `db:"end_time" json:"end_time,omitempty"`
	Instructors       InstructorList `db:"instructors" json:"instructors"`
}

// HasSchedule reports whether the section carries enough meeting data to
// place it on a calendar. Online and asynchronous sections do not.
func (s Section) HasSchedule() bool {
	return len(s.Days) > 0 && s.StartTime != nil && s.EndTime != nil
}

// SectionFilter narrows section listings.
type SectionFilter struct {
	Term     string
	CourseID string
	Query    string
	Page     int
	PageSize int
}
