package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclass/planner-api/internal/service"
	"github.com/openclass/planner-api/pkg/response"
)

// CalendarHandler exposes the materialized term calendar.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler constructs a calendar handler.
func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

// Events godoc
// @Summary Calendar events for a term
// @Description Course events come back as weekly recurrences; unavailable blocks as editable one-offs.
// @Tags Calendar
// @Produce json
// @Param id path string true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/calendar [get]
func (h *CalendarHandler) Events(c *gin.Context) {
	calendar, err := h.service.EventsForTerm(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calendar, nil)
}

// ICS godoc
// @Summary iCalendar feed for a term
// @Tags Calendar
// @Produce text/calendar
// @Param id path string true "Term ID"
// @Success 200 {string} string "ICS payload"
// @Router /terms/{id}/calendar.ics [get]
func (h *CalendarHandler) ICS(c *gin.Context) {
	payload, err := h.service.ICS(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", payload)
}
