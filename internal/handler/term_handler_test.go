package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/openclass/planner-api/internal/models"
	"github.com/openclass/planner-api/internal/service"
)

type termRepoMock struct {
	terms map[string]*models.Term
}

func (m *termRepoMock) List(ctx context.Context) ([]models.Term, error) {
	var out []models.Term
	for _, t := range m.terms {
		out = append(out, *t)
	}
	return out, nil
}

func (m *termRepoMock) FindByID(ctx context.Context, id string) (*models.Term, error) {
	if t, ok := m.terms[id]; ok {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *termRepoMock) FindOrCreate(ctx context.Context, season models.Season, year int) (*models.Term, error) {
	for _, t := range m.terms {
		if t.Season == season && t.Year == year {
			return t, nil
		}
	}
	t := &models.Term{ID: "term-new", Season: season, Year: year}
	m.terms[t.ID] = t
	return t, nil
}

func newTermHandler() *TermHandler {
	svc := service.NewTermService(&termRepoMock{terms: map[string]*models.Term{}}, nil, nil)
	return NewTermHandler(svc)
}

func TestTermHandlerResolve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTermHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/terms/resolve", strings.NewReader(`{"season":"Fall","year":2025}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Resolve(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data struct {
			Season string `json:"season"`
			Code   string `json:"code"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "Fall", envelope.Data.Season)
	require.Equal(t, "202515", envelope.Data.Code)
}

func TestTermHandlerResolveRejectsBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTermHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/terms/resolve", strings.NewReader(`{"season":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Resolve(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTermHandlerDecodeCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTermHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/terms/decode/202525", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "code", Value: "202525"}}

	handler.DecodeCode(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data struct {
			Season string `json:"season"`
			Known  bool   `json:"known"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Data.Known)
	require.Equal(t, "Winter", envelope.Data.Season)
}

func TestTermHandlerCodeRequiresNumericYear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTermHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/terms/code?season=Fall&year=twenty", nil)
	c.Request = req

	handler.Code(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
