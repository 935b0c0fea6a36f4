package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclass/planner-api/internal/models"
	appErrors "github.com/openclass/planner-api/pkg/errors"
)

type stubCourseStore struct {
	courses map[string]*models.Course
	ensured []models.Course
}

func newStubCourseStore(courses ...models.Course) *stubCourseStore {
	store := &stubCourseStore{courses: make(map[string]*models.Course)}
	for i := range courses {
		store.courses[courses[i].ID] = &courses[i]
	}
	return store
}

func (s *stubCourseStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := s.courses[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubCourseStore) Ensure(ctx context.Context, course *models.Course) error {
	s.ensured = append(s.ensured, *course)
	s.courses[course.ID] = course
	return nil
}

func (s *stubCourseStore) SetCompleted(ctx context.Context, id string, completed bool) (int64, error) {
	c, ok := s.courses[id]
	if !ok {
		return 0, nil
	}
	c.Completed = completed
	return 1, nil
}

func (s *stubCourseStore) Corequisites(ctx context.Context, courseID string) ([]models.Corequisite, error) {
	return []models.Corequisite{{CourseID: courseID, CoreqID: "MATH-201", CoreqName: "Calculus II"}}, nil
}

type recordingInvalidator struct {
	patterns []string
}

func (r *recordingInvalidator) DeleteByPattern(ctx context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	return nil
}

func TestCourseServiceGetNotFound(t *testing.T) {
	svc := NewCourseService(newStubCourseStore(), nil, nil)

	_, err := svc.Get(context.Background(), "CS-999")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCourseServiceMarkCompletedExistingCourse(t *testing.T) {
	store := newStubCourseStore(models.Course{ID: "CS-101", Code: "CS-101", Title: "Intro to CS"})
	invalidator := &recordingInvalidator{}
	svc := NewCourseService(store, invalidator, nil)

	course, err := svc.MarkCompleted(context.Background(), "CS-101", MarkCompletedRequest{Completed: true})
	require.NoError(t, err)

	assert.True(t, course.Completed)
	assert.Empty(t, store.ensured)
	assert.Equal(t, []string{"coreqs:*"}, invalidator.patterns)
}

func TestCourseServiceMarkCompletedCreatesUnknownCourse(t *testing.T) {
	store := newStubCourseStore()
	svc := NewCourseService(store, nil, nil)

	course, err := svc.MarkCompleted(context.Background(), "HIST-210", MarkCompletedRequest{Title: "World History", Completed: true})
	require.NoError(t, err)

	require.Len(t, store.ensured, 1)
	assert.Equal(t, "HIST-210", store.ensured[0].Code)
	assert.Equal(t, "World History", course.Title)
	assert.True(t, course.Completed)
}

func TestCourseServiceMarkCompletedClearsFlag(t *testing.T) {
	store := newStubCourseStore(models.Course{ID: "CS-101", Code: "CS-101", Completed: true})
	svc := NewCourseService(store, nil, nil)

	course, err := svc.MarkCompleted(context.Background(), "CS-101", MarkCompletedRequest{Completed: false})
	require.NoError(t, err)
	assert.False(t, course.Completed)
}

func TestCourseServiceCorequisites(t *testing.T) {
	svc := NewCourseService(newStubCourseStore(), nil, nil)

	coreqs, err := svc.Corequisites(context.Background(), "PHYS-211")
	require.NoError(t, err)
	require.Len(t, coreqs, 1)
	assert.Equal(t, "MATH-201", coreqs[0].CoreqID)
}
