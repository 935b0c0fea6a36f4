package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/openclass/planner-api/internal/dto"
	"github.com/openclass/planner-api/internal/models"
	"github.com/openclass/planner-api/internal/schedule"
	appErrors "github.com/openclass/planner-api/pkg/errors"
)

type sectionLister interface {
	List(ctx context.Context, filter models.SectionFilter) ([]models.Section, int, error)
	FindByCRN(ctx context.Context, crn string) (*models.Section, error)
}

type snapshotter interface {
	Snapshot(ctx context.Context, termID string) (schedule.CommittedSet, error)
}

// SectionService serves catalog section search, optionally filtering
// out sections that clash with an existing plan.
type SectionService struct {
	sections  sectionLister
	conflicts snapshotter
	logger    *zap.Logger
}

// NewSectionService creates a section service instance.
func NewSectionService(sections sectionLister, conflicts snapshotter, logger *zap.Logger) *SectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionService{sections: sections, conflicts: conflicts, logger: logger}
}

// List returns catalog sections matching the request. When a term plan
// is named, the hide flags drop sections whose meetings collide with
// committed courses or unavailable blocks. Hidden sections still count
// toward the unfiltered total.
func (s *SectionService) List(ctx context.Context, req dto.SectionListRequest) ([]models.Section, *models.Pagination, error) {
	filter := models.SectionFilter{
		Term:     req.Term,
		CourseID: req.CourseID,
		Query:    req.Query,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	sections, total, err := s.sections.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}

	if req.TermID != "" && (req.HideCourseClashes || req.HideBlockClashes) {
		committed, err := s.conflicts.Snapshot(ctx, req.TermID)
		if err != nil {
			return nil, nil, err
		}
		kept := sections[:0]
		for _, sec := range sections {
			if req.HideCourseClashes && schedule.OverlapsAnyCourse(sec, committed) {
				continue
			}
			if req.HideBlockClashes && schedule.OverlapsAnyUnavailable(sec, committed) {
				continue
			}
			kept = append(kept, sec)
		}
		sections = kept
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return sections, pagination, nil
}

// Get loads a single section by CRN.
func (s *SectionService) Get(ctx context.Context, crn string) (*models.Section, error) {
	section, err := s.sections.FindByCRN(ctx, crn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	return section, nil
}
