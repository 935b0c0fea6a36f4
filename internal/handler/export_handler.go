package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclass/planner-api/internal/service"
	appErrors "github.com/openclass/planner-api/pkg/errors"
	"github.com/openclass/planner-api/pkg/response"
)

// ExportHandler serves schedule downloads.
type ExportHandler struct {
	service *service.ExportService
	enabled bool
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc *service.ExportService, enabled bool) *ExportHandler {
	return &ExportHandler{service: svc, enabled: enabled}
}

// Schedule godoc
// @Summary Export the term schedule
// @Tags Export
// @Produce octet-stream
// @Param id path string true "Term ID"
// @Param format query string false "csv, pdf, or xlsx" default(csv)
// @Success 200 {string} string "file payload"
// @Router /terms/{id}/export [get]
func (h *ExportHandler) Schedule(c *gin.Context) {
	if !h.enabled {
		response.Error(c, appErrors.New("EXPORTS_DISABLED", http.StatusServiceUnavailable, "exports are disabled"))
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.service.Schedule(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
