package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openclass/planner-api/internal/dto"
	"github.com/openclass/planner-api/internal/models"
	appErrors "github.com/openclass/planner-api/pkg/errors"
)

type termRepository interface {
	List(ctx context.Context) ([]models.Term, error)
	FindByID(ctx context.Context, id string) (*models.Term, error)
	FindOrCreate(ctx context.Context, season models.Season, year int) (*models.Term, error)
}

// ResolveTermRequest names the term a client wants to plan against.
type ResolveTermRequest struct {
	Season string `json:"season" validate:"required"`
	Year   int    `json:"year" validate:"required,gte=1900,lte=2200"`
}

// TermService resolves and lists academic terms.
type TermService struct {
	repo      termRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTermService creates a new term service instance.
func NewTermService(repo termRepository, validate *validator.Validate, logger *zap.Logger) *TermService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{repo: repo, validator: validate, logger: logger}
}

// List returns all known terms with their registrar codes.
func (s *TermService) List(ctx context.Context) ([]dto.TermResponse, error) {
	terms, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	out := make([]dto.TermResponse, 0, len(terms))
	for _, term := range terms {
		out = append(out, dto.TermResponse{Term: term, Code: term.Code()})
	}
	return out, nil
}

// Get returns a term by ID.
func (s *TermService) Get(ctx context.Context, id string) (*models.Term, error) {
	term, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}
	return term, nil
}

// Resolve finds or lazily creates the term row for a season and year.
func (s *TermService) Resolve(ctx context.Context, req ResolveTermRequest) (*dto.TermResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	season, ok := models.ParseSeason(req.Season)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown season: "+req.Season)
	}

	term, err := s.repo.FindOrCreate(ctx, season, req.Year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve term")
	}
	s.logger.Debug("term resolved", zap.String("term_id", term.ID), zap.String("season", string(season)), zap.Int("year", req.Year))
	return &dto.TermResponse{Term: *term, Code: term.Code()}, nil
}

// Code maps a season and year to its registrar code.
func (s *TermService) Code(season string, year int) (string, error) {
	parsed, ok := models.ParseSeason(season)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown season: "+season)
	}
	code, err := models.TermCode(parsed, year)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return code, nil
}

// DecodeCode parses a registrar term code. Unknown codes are not an
// error: the response carries Known = false so catalog lookups against
// arbitrary upstream codes stay cheap.
func (s *TermService) DecodeCode(code string) dto.TermCodeResponse {
	season, year, ok := models.ParseTermCode(code)
	if !ok {
		return dto.TermCodeResponse{Code: code}
	}
	return dto.TermCodeResponse{Code: code, Season: string(season), Year: &year, Known: true}
}
