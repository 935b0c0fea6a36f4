package dto

import "github.com/openclass/planner-api/internal/models"

// AddCourseResponse reports what committing a section produced. Sections
// without meeting data join the plan but place nothing on the calendar.
type AddCourseResponse struct {
	Section   models.Section     `json:"section"`
	Events    []models.PlanEvent `json:"events"`
	Scheduled bool               `json:"scheduled"`
	Message   string             `json:"message,omitempty"`
}

// PlannedSectionResponse pairs a membership row with its section data.
type PlannedSectionResponse struct {
	Membership models.TermSection `json:"membership"`
	Section    *models.Section    `json:"section,omitempty"`
}
