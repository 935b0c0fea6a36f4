package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclass/planner-api/internal/service"
	"github.com/openclass/planner-api/pkg/response"
)

// ConflictHandler exposes the term conflict report.
type ConflictHandler struct {
	service *service.ConflictService
}

// NewConflictHandler constructs a conflict handler.
func NewConflictHandler(svc *service.ConflictService) *ConflictHandler {
	return &ConflictHandler{service: svc}
}

// Report godoc
// @Summary Full conflict report for a term
// @Description Evaluates every committed course against the rest of the plan.
// @Tags Conflicts
// @Produce json
// @Param id path string true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/conflicts [get]
func (h *ConflictHandler) Report(c *gin.Context) {
	report, err := h.service.Compute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"conflicts": report.Conflicts}, nil)
}

// Summary godoc
// @Summary Conflict counts by type
// @Tags Conflicts
// @Produce json
// @Param id path string true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/conflicts/summary [get]
func (h *ConflictHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
