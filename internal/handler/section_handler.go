package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openclass/planner-api/internal/dto"
	"github.com/openclass/planner-api/internal/service"
	appErrors "github.com/openclass/planner-api/pkg/errors"
	"github.com/openclass/planner-api/pkg/response"
)

// SectionHandler exposes catalog section endpoints.
type SectionHandler struct {
	sections  *service.SectionService
	conflicts *service.ConflictService
}

// NewSectionHandler constructs a section handler.
func NewSectionHandler(sections *service.SectionService, conflicts *service.ConflictService) *SectionHandler {
	return &SectionHandler{sections: sections, conflicts: conflicts}
}

// List godoc
// @Summary Search catalog sections
// @Description Lists sections, optionally hiding ones that clash with a term plan.
// @Tags Sections
// @Produce json
// @Param term query string false "Registrar term code"
// @Param course_id query string false "Course ID"
// @Param q query string false "Course or title search"
// @Param term_id query string false "Plan to filter clashes against"
// @Param hide_course_clashes query bool false "Hide sections overlapping committed courses"
// @Param hide_block_clashes query bool false "Hide sections overlapping unavailable blocks"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /sections [get]
func (h *SectionHandler) List(c *gin.Context) {
	req := dto.SectionListRequest{
		Term:     c.Query("term"),
		CourseID: c.Query("course_id"),
		Query:    c.Query("q"),
		TermID:   c.Query("term_id"),
	}
	if v, err := strconv.ParseBool(c.DefaultQuery("hide_course_clashes", "false")); err == nil {
		req.HideCourseClashes = v
	}
	if v, err := strconv.ParseBool(c.DefaultQuery("hide_block_clashes", "false")); err == nil {
		req.HideBlockClashes = v
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		req.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil {
		req.PageSize = size
	}

	sections, pagination, err := h.sections.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections, pagination)
}

// Get godoc
// @Summary Get a catalog section
// @Tags Sections
// @Produce json
// @Param crn path string true "Section CRN"
// @Success 200 {object} response.Envelope
// @Router /sections/{crn} [get]
func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.sections.Get(c.Request.Context(), c.Param("crn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, section, nil)
}

// Classify godoc
// @Summary Classify a section against a term plan
// @Description Evaluates a candidate section without committing it.
// @Tags Sections
// @Produce json
// @Param crn path string true "Section CRN"
// @Param term_id query string true "Term plan to evaluate against"
// @Success 200 {object} response.Envelope
// @Router /sections/{crn}/conflicts [get]
func (h *SectionHandler) Classify(c *gin.Context) {
	termID := c.Query("term_id")
	if termID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term_id is required"))
		return
	}
	records, err := h.conflicts.ClassifyCandidate(c.Request.Context(), termID, c.Param("crn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"conflicts": records}, nil)
}
