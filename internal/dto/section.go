package dto

import "github.com/openclass/planner-api/internal/models"

// SectionListRequest captures query parameters for section search.
type SectionListRequest struct {
	Term              string `form:"term"`
	CourseID          string `form:"course_id"`
	Query             string `form:"q"`
	TermID            string `form:"term_id"`
	HideCourseClashes bool   `form:"hide_course_clashes"`
	HideBlockClashes  bool   `form:"hide_block_clashes"`
	Page              int    `form:"page"`
	PageSize          int    `form:"page_size"`
}

// SectionResponse annotates a catalog section with its conflicts
// against the active plan.
type SectionResponse struct {
	models.Section
	Conflicts []models.ConflictRecord `json:"conflicts,omitempty"`
}
