package dto

import "github.com/openclass/planner-api/internal/models"

// TermResponse adds the registrar code to a term row.
type TermResponse struct {
	models.Term
	Code string `json:"code"`
}

// TermCodeResponse is the decoded form of a registrar term code. An
// unrecognized code yields empty fields rather than an error.
type TermCodeResponse struct {
	Code   string `json:"code"`
	Season string `json:"season,omitempty"`
	Year   *int   `json:"year,omitempty"`
	Known  bool   `json:"known"`
}

// ConflictSummaryResponse tallies a term's conflicts by type.
type ConflictSummaryResponse struct {
	TermID string                      `json:"term_id"`
	Total  int                         `json:"total"`
	Counts map[models.ConflictType]int `json:"counts"`
}
