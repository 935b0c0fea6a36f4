package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openclass/planner-api/internal/models"
)

const planEventColumns = "id, term_id, type, title, crn, start_at, end_at, created_at, updated_at"

// PlanEventRepository handles persistence for committed calendar rows
// and their term-section memberships.
type PlanEventRepository struct {
	db *sqlx.DB
}

// NewPlanEventRepository instantiates a plan event repository.
func NewPlanEventRepository(db *sqlx.DB) *PlanEventRepository {
	return &PlanEventRepository{db: db}
}

// ListByTerm returns every committed event for a term in stable order.
func (r *PlanEventRepository) ListByTerm(ctx context.Context, termID string) ([]models.PlanEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM plan_events WHERE term_id = $1 ORDER BY start_at, id", planEventColumns)
	var events []models.PlanEvent
	if err := r.db.SelectContext(ctx, &events, query, termID); err != nil {
		return nil, fmt.Errorf("list plan events: %w", err)
	}
	return events, nil
}

// FindByID loads an event by identifier.
func (r *PlanEventRepository) FindByID(ctx context.Context, id string) (*models.PlanEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM plan_events WHERE id = $1", planEventColumns)
	var event models.PlanEvent
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// HasCourse reports whether any course event for the CRN exists in the
// term.
func (r *PlanEventRepository) HasCourse(ctx context.Context, termID, crn string) (bool, error) {
	const query = `SELECT COUNT(*) FROM plan_events WHERE term_id = $1 AND type = 'course' AND crn = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, termID, crn); err != nil {
		return false, fmt.Errorf("check course events: %w", err)
	}
	return count > 0, nil
}

// CountUnavailable returns the number of unavailable blocks in a term.
func (r *PlanEventRepository) CountUnavailable(ctx context.Context, termID string) (int, error) {
	const query = `SELECT COUNT(*) FROM plan_events WHERE term_id = $1 AND type = 'unavailable'`
	var count int
	if err := r.db.GetContext(ctx, &count, query, termID); err != nil {
		return 0, fmt.Errorf("count unavailable blocks: %w", err)
	}
	return count, nil
}

// AddCourse records a section's membership in the term and inserts its
// event group in a single transaction so a failure never leaves a
// partially scheduled course.
func (r *PlanEventRepository) AddCourse(ctx context.Context, membership *models.TermSection, events []models.PlanEvent) error {
	now := time.Now().UTC()
	membership.Status = models.SectionStatusPlanned
	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = now
	}
	membership.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add course tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const upsert = `INSERT INTO term_sections (crn, term_id, course_id, status, liked, created_at, updated_at)
		VALUES (:crn, :term_id, :course_id, :status, :liked, :created_at, :updated_at)
		ON CONFLICT (crn, term_id) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	if _, err = tx.NamedExecContext(ctx, upsert, membership); err != nil {
		return fmt.Errorf("upsert term section: %w", err)
	}

	const insert = `INSERT INTO plan_events (id, term_id, type, title, crn, start_at, end_at, created_at, updated_at)
		VALUES (:id, :term_id, :type, :title, :crn, :start_at, :end_at, :created_at, :updated_at)`
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
		events[i].CreatedAt = now
		events[i].UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, insert, &events[i]); err != nil {
			return fmt.Errorf("insert course event: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit add course tx: %w", err)
	}
	return nil
}

// RemoveCourse deletes the whole event group for a CRN plus its
// membership row in one transaction. It returns the number of events
// removed.
func (r *PlanEventRepository) RemoveCourse(ctx context.Context, termID, crn string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin remove course tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM plan_events WHERE term_id = $1 AND type = 'course' AND crn = $2`, termID, crn)
	if err != nil {
		return 0, fmt.Errorf("delete course events: %w", err)
	}
	removed, _ := res.RowsAffected()

	if _, err = tx.ExecContext(ctx, `DELETE FROM term_sections WHERE term_id = $1 AND crn = $2`, termID, crn); err != nil {
		return 0, fmt.Errorf("delete term section: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit remove course tx: %w", err)
	}
	return removed, nil
}

// Create inserts a standalone event row.
func (r *PlanEventRepository) Create(ctx context.Context, event *models.PlanEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	const query = `INSERT INTO plan_events (id, term_id, type, title, crn, start_at, end_at, created_at, updated_at)
		VALUES (:id, :term_id, :type, :title, :crn, :start_at, :end_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create plan event: %w", err)
	}
	return nil
}

// Update rewrites an event's title and time range.
func (r *PlanEventRepository) Update(ctx context.Context, event *models.PlanEvent) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE plan_events SET title = :title, start_at = :start_at, end_at = :end_at, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update plan event: %w", err)
	}
	return nil
}

// Delete removes a single event row.
func (r *PlanEventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete plan event: %w", err)
	}
	return nil
}

// ListMemberships returns the planned sections of a term.
func (r *PlanEventRepository) ListMemberships(ctx context.Context, termID string) ([]models.TermSection, error) {
	const query = `SELECT crn, term_id, course_id, status, liked, created_at, updated_at FROM term_sections WHERE term_id = $1 AND status = 'planned' ORDER BY crn`
	var memberships []models.TermSection
	if err := r.db.SelectContext(ctx, &memberships, query, termID); err != nil {
		return nil, fmt.Errorf("list term sections: %w", err)
	}
	return memberships, nil
}

// SetLiked toggles the liked flag on a membership.
func (r *PlanEventRepository) SetLiked(ctx context.Context, termID, crn string, liked bool) error {
	const query = `UPDATE term_sections SET liked = $3, updated_at = $4 WHERE term_id = $1 AND crn = $2`
	if _, err := r.db.ExecContext(ctx, query, termID, crn, liked, time.Now().UTC()); err != nil {
		return fmt.Errorf("set liked: %w", err)
	}
	return nil
}
