package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openclass/planner-api/internal/models"
)

// TermRepository handles persistence for academic terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository instantiates a term repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// List returns all known terms, newest first.
func (r *TermRepository) List(ctx context.Context) ([]models.Term, error) {
	const query = `SELECT id, season, year, created_at, updated_at FROM terms ORDER BY year DESC, season ASC`
	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// FindByID loads a term by identifier.
func (r *TermRepository) FindByID(ctx context.Context, id string) (*models.Term, error) {
	const query = `SELECT id, season, year, created_at, updated_at FROM terms WHERE id = $1`
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}
	return &term, nil
}

// FindBySeasonYear loads the term for a season and year, if one exists.
func (r *TermRepository) FindBySeasonYear(ctx context.Context, season models.Season, year int) (*models.Term, error) {
	const query = `SELECT id, season, year, created_at, updated_at FROM terms WHERE season = $1 AND year = $2`
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, season, year); err != nil {
		return nil, err
	}
	return &term, nil
}

// FindOrCreate resolves the term row for a season and year, creating it
// on first use. The unique (season, year) constraint makes the create
// race-safe: a concurrent insert falls back to the existing row.
func (r *TermRepository) FindOrCreate(ctx context.Context, season models.Season, year int) (*models.Term, error) {
	term, err := r.FindBySeasonYear(ctx, season, year)
	if err == nil {
		return term, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("find term: %w", err)
	}

	created := &models.Term{
		ID:        uuid.NewString(),
		Season:    season,
		Year:      year,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	const insert = `INSERT INTO terms (id, season, year, created_at, updated_at) VALUES (:id, :season, :year, :created_at, :updated_at) ON CONFLICT (season, year) DO NOTHING`
	res, err := r.db.NamedExecContext(ctx, insert, created)
	if err != nil {
		return nil, fmt.Errorf("create term: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.FindBySeasonYear(ctx, season, year)
	}
	return created, nil
}

// Delete removes a term permanently; plan rows cascade.
func (r *TermRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM terms WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete term: %w", err)
	}
	return nil
}
