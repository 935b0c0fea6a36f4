package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openclass/planner-api/internal/models"
)

// CourseRepository handles catalog courses, corequisite links, and
// completed-coursework flags.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository instantiates a course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID loads a course by identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, code, title, credits, completed, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Ensure upserts the catalog row behind a section so memberships always
// have a course to point at. Completed flags already set are preserved.
func (r *CourseRepository) Ensure(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, code, title, credits, completed, created_at, updated_at)
		VALUES (:id, :code, :title, :credits, :completed, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code, title = EXCLUDED.title, credits = EXCLUDED.credits, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("ensure course: %w", err)
	}
	return nil
}

// SetCompleted flags a course as completed coursework (or clears it).
func (r *CourseRepository) SetCompleted(ctx context.Context, id string, completed bool) (int64, error) {
	const query = `UPDATE courses SET completed = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, completed, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("set course completed: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ListCompletedIDs returns the IDs of all completed courses.
func (r *CourseRepository) ListCompletedIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM courses WHERE completed = TRUE ORDER BY id`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("list completed courses: %w", err)
	}
	return ids, nil
}

// Corequisites returns the corequisite links for a course.
func (r *CourseRepository) Corequisites(ctx context.Context, courseID string) ([]models.Corequisite, error) {
	const query = `SELECT course_id, coreq_id, coreq_name FROM corequisites WHERE course_id = $1 ORDER BY coreq_id`
	var coreqs []models.Corequisite
	if err := r.db.SelectContext(ctx, &coreqs, query, courseID); err != nil {
		return nil, fmt.Errorf("list corequisites: %w", err)
	}
	return coreqs, nil
}
