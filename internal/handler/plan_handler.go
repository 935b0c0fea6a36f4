package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclass/planner-api/internal/service"
	appErrors "github.com/openclass/planner-api/pkg/errors"
	"github.com/openclass/planner-api/pkg/response"
)

// PlanHandler exposes term plan mutation endpoints.
type PlanHandler struct {
	service *service.PlanService
}

// NewPlanHandler constructs a plan handler.
func NewPlanHandler(svc *service.PlanService) *PlanHandler {
	return &PlanHandler{service: svc}
}

// ListPlanned godoc
// @Summary List planned sections
// @Tags Plan
// @Produce json
// @Param id path string true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/plan [get]
func (h *PlanHandler) ListPlanned(c *gin.Context) {
	planned, err := h.service.ListPlanned(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, planned, nil)
}

// AddCourse godoc
// @Summary Commit a section to the plan
// @Description Adds the section and fans its meetings out onto the calendar. Conflicts do not block the add.
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path string true "Term ID"
// @Param payload body service.AddCourseRequest true "Section CRN"
// @Success 201 {object} response.Envelope
// @Router /terms/{id}/plan/courses [post]
func (h *PlanHandler) AddCourse(c *gin.Context) {
	var req service.AddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.AddCourse(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// RemoveCourse godoc
// @Summary Remove a planned section
// @Description Drops the section's whole event group atomically.
// @Tags Plan
// @Produce json
// @Param id path string true "Term ID"
// @Param crn path string true "Section CRN"
// @Success 204
// @Router /terms/{id}/plan/courses/{crn} [delete]
func (h *PlanHandler) RemoveCourse(c *gin.Context) {
	if err := h.service.RemoveCourse(c.Request.Context(), c.Param("id"), c.Param("crn")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetLiked godoc
// @Summary Toggle the liked flag on a planned section
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path string true "Term ID"
// @Param crn path string true "Section CRN"
// @Param payload body service.LikeSectionRequest true "Liked flag"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/plan/courses/{crn}/like [put]
func (h *PlanHandler) SetLiked(c *gin.Context) {
	var req service.LikeSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.SetLiked(c.Request.Context(), c.Param("id"), c.Param("crn"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"liked": req.Liked}, nil)
}

// CreateBlock godoc
// @Summary Create an unavailable block
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path string true "Term ID"
// @Param payload body service.CreateBlockRequest true "Block"
// @Success 201 {object} response.Envelope
// @Router /terms/{id}/blocks [post]
func (h *PlanHandler) CreateBlock(c *gin.Context) {
	var req service.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	block, err := h.service.CreateBlock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, block)
}

// UpdateBlock godoc
// @Summary Move or rename an unavailable block
// @Description Course events cannot be edited through this endpoint.
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path string true "Term ID"
// @Param eventId path string true "Event ID"
// @Param payload body service.UpdateBlockRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/blocks/{eventId} [put]
func (h *PlanHandler) UpdateBlock(c *gin.Context) {
	var req service.UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	block, err := h.service.UpdateBlock(c.Request.Context(), c.Param("id"), c.Param("eventId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, block, nil)
}

// DeleteBlock godoc
// @Summary Delete an unavailable block
// @Tags Plan
// @Produce json
// @Param id path string true "Term ID"
// @Param eventId path string true "Event ID"
// @Success 204
// @Router /terms/{id}/blocks/{eventId} [delete]
func (h *PlanHandler) DeleteBlock(c *gin.Context) {
	if err := h.service.DeleteBlock(c.Request.Context(), c.Param("id"), c.Param("eventId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
