package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/openclass/planner-api/internal/models"
)

const sectionColumns = "crn, course_id, course, title, credits, instruction_method, instruction_type, term, days, start_time, end_time, instructors"

// SectionRepository reads the ingested catalog sections.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository instantiates a section repository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// List returns sections matching the filter plus a total count for
// pagination.
func (r *SectionRepository) List(ctx context.Context, filter models.SectionFilter) ([]models.Section, int, error) {
	base := "FROM sections WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Term != "" {
		conditions = append(conditions, fmt.Sprintf("term = $%d", len(args)+1))
		args = append(args, filter.Term)
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(course ILIKE $%d OR title ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Query+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY course, crn LIMIT %d OFFSET %d", sectionColumns, base, size, offset)

	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sections: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sections: %w", err)
	}

	return sections, total, nil
}

// FindByCRN loads a section by its CRN.
func (r *SectionRepository) FindByCRN(ctx context.Context, crn string) (*models.Section, error) {
	query := fmt.Sprintf("SELECT %s FROM sections WHERE crn = $1", sectionColumns)
	var section models.Section
	if err := r.db.GetContext(ctx, &section, query, crn); err != nil {
		return nil, err
	}
	return &section, nil
}

// FindByCRNs loads the sections behind a batch of CRNs. Missing CRNs are
// silently absent from the result.
func (r *SectionRepository) FindByCRNs(ctx context.Context, crns []string) ([]models.Section, error) {
	if len(crns) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM sections WHERE crn IN (?)", sectionColumns), crns)
	if err != nil {
		return nil, fmt.Errorf("build section batch query: %w", err)
	}
	query = r.db.Rebind(query)

	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, fmt.Errorf("load sections by crn: %w", err)
	}
	return sections, nil
}
