package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclass/planner-api/internal/service"
	appErrors "github.com/openclass/planner-api/pkg/errors"
	"github.com/openclass/planner-api/pkg/response"
)

// CourseHandler exposes catalog course endpoints.
type CourseHandler struct {
	service *service.CourseService
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(svc *service.CourseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// Get godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Corequisites godoc
// @Summary List a course's corequisites
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/corequisites [get]
func (h *CourseHandler) Corequisites(c *gin.Context) {
	coreqs, err := h.service.Corequisites(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coreqs, nil)
}

// MarkCompleted godoc
// @Summary Flag coursework as taken
// @Description Completed courses satisfy corequisite requirements without being scheduled.
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.MarkCompletedRequest true "Completed flag"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/completed [put]
func (h *CourseHandler) MarkCompleted(c *gin.Context) {
	var req service.MarkCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.service.MarkCompleted(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}
