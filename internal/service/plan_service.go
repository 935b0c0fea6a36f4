package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openclass/planner-api/internal/dto"
	"github.com/openclass/planner-api/internal/models"
	"github.com/openclass/planner-api/internal/schedule"
	appErrors "github.com/openclass/planner-api/pkg/errors"
)

type planEventRepository interface {
	ListByTerm(ctx context.Context, termID string) ([]models.PlanEvent, error)
	FindByID(ctx context.Context, id string) (*models.PlanEvent, error)
	HasCourse(ctx context.Context, termID, crn string) (bool, error)
	CountUnavailable(ctx context.Context, termID string) (int, error)
	AddCourse(ctx context.Context, membership *models.TermSection, events []models.PlanEvent) error
	RemoveCourse(ctx context.Context, termID, crn string) (int64, error)
	Create(ctx context.Context, event *models.PlanEvent) error
	Update(ctx context.Context, event *models.PlanEvent) error
	Delete(ctx context.Context, id string) error
	ListMemberships(ctx context.Context, termID string) ([]models.TermSection, error)
	SetLiked(ctx context.Context, termID, crn string, liked bool) error
}

type courseWriter interface {
	Ensure(ctx context.Context, course *models.Course) error
}

// AddCourseRequest commits a section to a term plan.
type AddCourseRequest struct {
	CRN string `json:"crn" validate:"required"`
}

// CreateBlockRequest adds an unavailable block to a term calendar.
type CreateBlockRequest struct {
	Title string    `json:"title"`
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

// UpdateBlockRequest moves or renames an unavailable block.
type UpdateBlockRequest struct {
	Title *string    `json:"title"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// LikeSectionRequest toggles the liked flag on a planned section.
type LikeSectionRequest struct {
	Liked bool `json:"liked"`
}

// PlanService mutates term plans: committing and removing course
// sections and managing unavailable blocks.
type PlanService struct {
	events    planEventRepository
	sections  sectionReader
	courses   courseWriter
	terms     termRepository
	maxBlocks int
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPlanService creates a plan service instance.
func NewPlanService(events planEventRepository, sections sectionReader, courses courseWriter, terms termRepository, maxBlocks int, validate *validator.Validate, logger *zap.Logger) *PlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBlocks <= 0 {
		maxBlocks = 50
	}
	return &PlanService{
		events:    events,
		sections:  sections,
		courses:   courses,
		terms:     terms,
		maxBlocks: maxBlocks,
		validator: validate,
		logger:    logger,
	}
}

// AddCourse commits a section to the term: it upserts the catalog
// course, records the membership, and fans the section out into one
// event per meeting weekday, all atomically. Conflicts do not block the
// add; they surface through the conflict report instead. Committing the
// same CRN twice does.
func (s *PlanService) AddCourse(ctx context.Context, termID string, req AddCourseRequest) (*dto.AddCourseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	term, err := s.terms.FindByID(ctx, termID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}

	section, err := s.sections.FindByCRN(ctx, req.CRN)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}

	exists, err := s.events.HasCourse(ctx, termID, req.CRN)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check plan")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "section is already planned for this term")
	}

	if err := s.courses.Ensure(ctx, &models.Course{
		ID:      section.CourseID,
		Code:    section.Course,
		Title:   section.Title,
		Credits: section.Credits,
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to upsert course")
	}

	membership := &models.TermSection{CRN: section.CRN, TermID: termID, CourseID: section.CourseID}

	placements := schedule.ProjectSection(*section, *term)
	events := make([]models.PlanEvent, 0, len(placements))
	for _, p := range placements {
		crn := section.CRN
		events = append(events, models.PlanEvent{
			TermID: termID,
			Type:   models.EventCourse,
			Title:  section.Course + ": " + section.Title,
			CRN:    &crn,
			Start:  p.Start,
			End:    p.End,
		})
	}

	if err := s.events.AddCourse(ctx, membership, events); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit course")
	}

	resp := &dto.AddCourseResponse{
		Section:   *section,
		Events:    events,
		Scheduled: len(events) > 0,
	}
	if len(events) == 0 {
		resp.Message = "section has no scheduled meetings; added to plan without calendar events"
	}
	s.logger.Info("course added to plan",
		zap.String("term_id", termID),
		zap.String("crn", section.CRN),
		zap.Int("events", len(events)))
	return resp, nil
}

// RemoveCourse drops a planned section and its whole event group.
func (s *PlanService) RemoveCourse(ctx context.Context, termID, crn string) error {
	removed, err := s.events.RemoveCourse(ctx, termID, crn)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove course")
	}
	s.logger.Info("course removed from plan",
		zap.String("term_id", termID),
		zap.String("crn", crn),
		zap.Int64("events_removed", removed))
	return nil
}

// ListPlanned returns the term's planned sections with catalog data.
func (s *PlanService) ListPlanned(ctx context.Context, termID string) ([]dto.PlannedSectionResponse, error) {
	memberships, err := s.events.ListMemberships(ctx, termID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list planned sections")
	}

	crns := make([]string, 0, len(memberships))
	for _, m := range memberships {
		crns = append(crns, m.CRN)
	}
	sections, err := s.sections.FindByCRNs(ctx, crns)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sections")
	}
	byCRN := make(map[string]models.Section, len(sections))
	for _, sec := range sections {
		byCRN[sec.CRN] = sec
	}

	out := make([]dto.PlannedSectionResponse, 0, len(memberships))
	for _, m := range memberships {
		item := dto.PlannedSectionResponse{Membership: m}
		if sec, ok := byCRN[m.CRN]; ok {
			s := sec
			item.Section = &s
		}
		out = append(out, item)
	}
	return out, nil
}

// SetLiked toggles the liked flag on a planned section.
func (s *PlanService) SetLiked(ctx context.Context, termID, crn string, req LikeSectionRequest) error {
	if err := s.events.SetLiked(ctx, termID, crn, req.Liked); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update liked flag")
	}
	return nil
}

// CreateBlock adds an unavailable block to the term calendar.
func (s *PlanService) CreateBlock(ctx context.Context, termID string, req CreateBlockRequest) (*models.PlanEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if !req.Start.Before(req.End) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "block must start before it ends")
	}

	count, err := s.events.CountUnavailable(ctx, termID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count blocks")
	}
	if count >= s.maxBlocks {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "unavailable block limit reached for this term")
	}

	title := req.Title
	if title == "" {
		title = "Unavailable"
	}
	event := &models.PlanEvent{
		TermID: termID,
		Type:   models.EventUnavailable,
		Title:  title,
		Start:  req.Start,
		End:    req.End,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create block")
	}
	return event, nil
}

// UpdateBlock moves or renames an unavailable block. Course events are
// immutable through this path; they change only by removing the CRN.
func (s *PlanService) UpdateBlock(ctx context.Context, termID, id string, req UpdateBlockRequest) (*models.PlanEvent, error) {
	event, err := s.loadBlock(ctx, termID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Start != nil {
		event.Start = *req.Start
	}
	if req.End != nil {
		event.End = *req.End
	}
	if !event.Start.Before(event.End) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "block must start before it ends")
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update block")
	}
	return event, nil
}

// DeleteBlock removes an unavailable block.
func (s *PlanService) DeleteBlock(ctx context.Context, termID, id string) error {
	if _, err := s.loadBlock(ctx, termID, id); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete block")
	}
	return nil
}

func (s *PlanService) loadBlock(ctx context.Context, termID, id string) (*models.PlanEvent, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if event.TermID != termID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found in this term")
	}
	if event.IsCourse() {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "course events cannot be edited; remove the section instead")
	}
	return event, nil
}
