package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/openclass/planner-api/internal/models"
	appErrors "github.com/openclass/planner-api/pkg/errors"
)

type courseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Ensure(ctx context.Context, course *models.Course) error
	SetCompleted(ctx context.Context, id string, completed bool) (int64, error)
	Corequisites(ctx context.Context, courseID string) ([]models.Corequisite, error)
}

type coreqCacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// MarkCompletedRequest flags coursework as already taken. Completed
// courses satisfy corequisite requirements without being scheduled.
type MarkCompletedRequest struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CourseService manages catalog courses and completed-coursework flags.
type CourseService struct {
	courses courseRepository
	cache   coreqCacheInvalidator
	logger  *zap.Logger
}

// NewCourseService creates a course service instance. The cache may be
// nil.
func NewCourseService(courses courseRepository, cache coreqCacheInvalidator, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, cache: cache, logger: logger}
}

// Get loads a course by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Corequisites returns the course's corequisite links.
func (s *CourseService) Corequisites(ctx context.Context, id string) ([]models.Corequisite, error) {
	coreqs, err := s.courses.Corequisites(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load corequisites")
	}
	return coreqs, nil
}

// MarkCompleted sets or clears the completed flag, creating the course
// row if the catalog has not seen it yet. Conflict reports pick the
// change up on their next run, so the cached corequisite entries are
// invalidated here.
func (s *CourseService) MarkCompleted(ctx context.Context, id string, req MarkCompletedRequest) (*models.Course, error) {
	n, err := s.courses.SetCompleted(ctx, id, req.Completed)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark course")
	}
	if n == 0 {
		course := &models.Course{ID: id, Code: req.Code, Title: req.Title, Completed: req.Completed}
		if course.Code == "" {
			course.Code = id
		}
		if err := s.courses.Ensure(ctx, course); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
		}
		if _, err := s.courses.SetCompleted(ctx, id, req.Completed); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark course")
		}
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "coreqs:*"); err != nil {
			s.logger.Warn("corequisite cache invalidation failed", zap.Error(err))
		}
	}

	return s.Get(ctx, id)
}
