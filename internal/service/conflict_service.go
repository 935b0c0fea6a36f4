package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/openclass/planner-api/internal/dto"
	"github.com/openclass/planner-api/internal/models"
	"github.com/openclass/planner-api/internal/schedule"
	appErrors "github.com/openclass/planner-api/pkg/errors"
)

type planEventReader interface {
	ListByTerm(ctx context.Context, termID string) ([]models.PlanEvent, error)
}

type sectionReader interface {
	FindByCRN(ctx context.Context, crn string) (*models.Section, error)
	FindByCRNs(ctx context.Context, crns []string) ([]models.Section, error)
}

type corequisiteReader interface {
	Corequisites(ctx context.Context, courseID string) ([]models.Corequisite, error)
	ListCompletedIDs(ctx context.Context) ([]string, error)
}

type conflictCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ConflictService computes conflict reports over committed term plans
// and classifies candidate sections against them. Corequisite lookups
// are cached: the links change only on catalog ingests.
type ConflictService struct {
	events   planEventReader
	sections sectionReader
	courses  corequisiteReader
	cache    conflictCache
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewConflictService creates a conflict service. The cache and metrics
// may be nil.
func NewConflictService(events planEventReader, sections sectionReader, courses corequisiteReader, cache conflictCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &ConflictService{
		events:   events,
		sections: sections,
		courses:  courses,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		logger:   logger,
	}
}

// Snapshot loads everything committed to a term's calendar.
func (s *ConflictService) Snapshot(ctx context.Context, termID string) (schedule.CommittedSet, error) {
	events, err := s.events.ListByTerm(ctx, termID)
	if err != nil {
		return schedule.CommittedSet{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plan events")
	}

	crnSet := make(map[string]struct{})
	for _, ev := range events {
		if ev.IsCourse() && ev.CRNValue() != "" {
			crnSet[ev.CRNValue()] = struct{}{}
		}
	}
	crns := make([]string, 0, len(crnSet))
	for crn := range crnSet {
		crns = append(crns, crn)
	}

	sections, err := s.sections.FindByCRNs(ctx, crns)
	if err != nil {
		return schedule.CommittedSet{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load committed sections")
	}

	byCRN := make(map[string]models.Section, len(sections))
	for _, sec := range sections {
		byCRN[sec.CRN] = sec
	}
	return schedule.CommittedSet{Events: events, Sections: byCRN}, nil
}

// Compute evaluates every committed course in the term against the rest
// of the plan and returns the full report.
func (s *ConflictService) Compute(ctx context.Context, termID string) (*schedule.Report, error) {
	committed, err := s.Snapshot(ctx, termID)
	if err != nil {
		return nil, err
	}

	completed, err := s.completedSet(ctx)
	if err != nil {
		return nil, err
	}

	coreqsByCourse := make(map[string][]models.Corequisite)
	for _, courseID := range committed.CourseIDs() {
		if _, done := completed[courseID]; done {
			continue
		}
		coreqs, err := s.corequisitesFor(ctx, courseID)
		if err != nil {
			return nil, err
		}
		coreqsByCourse[courseID] = filterSatisfied(coreqs, completed)
	}

	report := schedule.ComputeConflicts(committed, coreqsByCourse)
	s.metrics.ObserveConflictReport(len(report.Conflicts))
	s.logger.Debug("conflict report computed",
		zap.String("term_id", termID),
		zap.Int("events", len(committed.Events)),
		zap.Int("records", len(report.Conflicts)))
	return report, nil
}

// Summary tallies the term's conflicts by type.
func (s *ConflictService) Summary(ctx context.Context, termID string) (*dto.ConflictSummaryResponse, error) {
	report, err := s.Compute(ctx, termID)
	if err != nil {
		return nil, err
	}
	counts := report.CountsByType()
	return &dto.ConflictSummaryResponse{
		TermID: termID,
		Total:  len(report.Conflicts),
		Counts: counts,
	}, nil
}

// ClassifyCandidate evaluates a catalog section against the term's
// committed plan without modifying anything.
func (s *ConflictService) ClassifyCandidate(ctx context.Context, termID, crn string) ([]models.ConflictRecord, error) {
	section, err := s.sections.FindByCRN(ctx, crn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}

	committed, err := s.Snapshot(ctx, termID)
	if err != nil {
		return nil, err
	}

	completed, err := s.completedSet(ctx)
	if err != nil {
		return nil, err
	}

	var coreqs []models.Corequisite
	if _, done := completed[section.CourseID]; !done {
		loaded, err := s.corequisitesFor(ctx, section.CourseID)
		if err != nil {
			return nil, err
		}
		coreqs = filterSatisfied(loaded, completed)
	}

	return schedule.ClassifySection(*section, committed, coreqs), nil
}

// corequisitesFor loads a course's corequisite links through the cache.
func (s *ConflictService) corequisitesFor(ctx context.Context, courseID string) ([]models.Corequisite, error) {
	key := "coreqs:" + courseID
	if s.cache != nil {
		var cached []models.Corequisite
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true)
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false)
		if err != appErrors.ErrCacheMiss {
			s.logger.Warn("corequisite cache read failed", zap.String("course_id", courseID), zap.Error(err))
		}
	}

	coreqs, err := s.courses.Corequisites(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load corequisites")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, coreqs, s.cacheTTL); err != nil {
			s.logger.Warn("corequisite cache write failed", zap.String("course_id", courseID), zap.Error(err))
		}
	}
	return coreqs, nil
}

func (s *ConflictService) completedSet(ctx context.Context) (map[string]struct{}, error) {
	ids, err := s.courses.ListCompletedIDs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load completed courses")
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// filterSatisfied drops corequisite links already covered by completed
// coursework.
func filterSatisfied(coreqs []models.Corequisite, completed map[string]struct{}) []models.Corequisite {
	if len(coreqs) == 0 {
		return nil
	}
	out := coreqs[:0]
	for _, cq := range coreqs {
		if _, done := completed[cq.CoreqID]; !done {
			out = append(out, cq)
		}
	}
	return out
}
