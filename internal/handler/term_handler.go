package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openclass/planner-api/internal/service"
	appErrors "github.com/openclass/planner-api/pkg/errors"
	"github.com/openclass/planner-api/pkg/response"
)

// TermHandler exposes term endpoints.
type TermHandler struct {
	service *service.TermService
}

// NewTermHandler constructs a term handler.
func NewTermHandler(svc *service.TermService) *TermHandler {
	return &TermHandler{service: svc}
}

// List godoc
// @Summary List terms
// @Tags Terms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /terms [get]
func (h *TermHandler) List(c *gin.Context) {
	terms, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, terms, nil)
}

// Get godoc
// @Summary Get term
// @Tags Terms
// @Produce json
// @Param id path string true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /terms/{id} [get]
func (h *TermHandler) Get(c *gin.Context) {
	term, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, term, nil)
}

// Resolve godoc
// @Summary Resolve a term by season and year
// @Description Finds the term for a season and year, creating it on first use.
// @Tags Terms
// @Accept json
// @Produce json
// @Param payload body service.ResolveTermRequest true "Term selector"
// @Success 200 {object} response.Envelope
// @Router /terms/resolve [post]
func (h *TermHandler) Resolve(c *gin.Context) {
	var req service.ResolveTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	term, err := h.service.Resolve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, term, nil)
}

// Code godoc
// @Summary Map a season and year to a registrar term code
// @Tags Terms
// @Produce json
// @Param season query string true "Season name"
// @Param year query int true "Year"
// @Success 200 {object} response.Envelope
// @Router /terms/code [get]
func (h *TermHandler) Code(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be an integer"))
		return
	}
	code, err := h.service.Code(c.Query("season"), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"code": code}, nil)
}

// DecodeCode godoc
// @Summary Decode a registrar term code
// @Description Unknown codes yield an empty decode rather than an error.
// @Tags Terms
// @Produce json
// @Param code path string true "Term code, e.g. 202515"
// @Success 200 {object} response.Envelope
// @Router /terms/decode/{code} [get]
func (h *TermHandler) DecodeCode(c *gin.Context) {
	decoded := h.service.DecodeCode(c.Param("code"))
	response.JSON(c, http.StatusOK, decoded, nil)
}
