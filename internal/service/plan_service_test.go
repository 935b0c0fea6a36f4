package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclass/planner-api/internal/models"
	appErrors "github.com/openclass/planner-api/pkg/errors"
)

type stubSectionRepo struct {
	sections map[string]models.Section
}

func newStubSectionRepo(sections ...models.Section) *stubSectionRepo {
	repo := &stubSectionRepo{sections: make(map[string]models.Section)}
	for _, sec := range sections {
		repo.sections[sec.CRN] = sec
	}
	return repo
}

func (r *stubSectionRepo) FindByCRN(ctx context.Context, crn string) (*models.Section, error) {
	if sec, ok := r.sections[crn]; ok {
		return &sec, nil
	}
	return nil, sql.ErrNoRows
}

func (r *stubSectionRepo) FindByCRNs(ctx context.Context, crns []string) ([]models.Section, error) {
	var out []models.Section
	for _, crn := range crns {
		if sec, ok := r.sections[crn]; ok {
			out = append(out, sec)
		}
	}
	return out, nil
}

type stubPlanEventRepo struct {
	events      map[string]*models.PlanEvent
	memberships map[string]models.TermSection
	addCalls    int
}

func newStubPlanEventRepo() *stubPlanEventRepo {
	return &stubPlanEventRepo{
		events:      make(map[string]*models.PlanEvent),
		memberships: make(map[string]models.TermSection),
	}
}

func (r *stubPlanEventRepo) ListByTerm(ctx context.Context, termID string) ([]models.PlanEvent, error) {
	var out []models.PlanEvent
	for _, ev := range r.events {
		if ev.TermID == termID {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (r *stubPlanEventRepo) FindByID(ctx context.Context, id string) (*models.PlanEvent, error) {
	if ev, ok := r.events[id]; ok {
		return ev, nil
	}
	return nil, sql.ErrNoRows
}

func (r *stubPlanEventRepo) HasCourse(ctx context.Context, termID, crn string) (bool, error) {
	for _, ev := range r.events {
		if ev.TermID == termID && ev.IsCourse() && ev.CRNValue() == crn {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPlanEventRepo) CountUnavailable(ctx context.Context, termID string) (int, error) {
	count := 0
	for _, ev := range r.events {
		if ev.TermID == termID && !ev.IsCourse() {
			count++
		}
	}
	return count, nil
}

func (r *stubPlanEventRepo) AddCourse(ctx context.Context, membership *models.TermSection, events []models.PlanEvent) error {
	r.addCalls++
	membership.Status = models.SectionStatusPlanned
	r.memberships[membership.TermID+"/"+membership.CRN] = *membership
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = membership.CRN + "-" + events[i].Start.Weekday().String()
		}
		ev := events[i]
		r.events[ev.ID] = &ev
	}
	return nil
}

func (r *stubPlanEventRepo) RemoveCourse(ctx context.Context, termID, crn string) (int64, error) {
	var removed int64
	for id, ev := range r.events {
		if ev.TermID == termID && ev.IsCourse() && ev.CRNValue() == crn {
			delete(r.events, id)
			removed++
		}
	}
	delete(r.memberships, termID+"/"+crn)
	return removed, nil
}

func (r *stubPlanEventRepo) Create(ctx context.Context, event *models.PlanEvent) error {
	if event.ID == "" {
		event.ID = "blk-" + event.Start.Format("150405")
	}
	ev := *event
	r.events[ev.ID] = &ev
	return nil
}

func (r *stubPlanEventRepo) Update(ctx context.Context, event *models.PlanEvent) error {
	ev := *event
	r.events[ev.ID] = &ev
	return nil
}

func (r *stubPlanEventRepo) Delete(ctx context.Context, id string) error {
	delete(r.events, id)
	return nil
}

func (r *stubPlanEventRepo) ListMemberships(ctx context.Context, termID string) ([]models.TermSection, error) {
	var out []models.TermSection
	for _, m := range r.memberships {
		if m.TermID == termID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubPlanEventRepo) SetLiked(ctx context.Context, termID, crn string, liked bool) error {
	key := termID + "/" + crn
	if m, ok := r.memberships[key]; ok {
		m.Liked = liked
		r.memberships[key] = m
	}
	return nil
}

type stubCourseWriter struct {
	ensured []models.Course
}

func (w *stubCourseWriter) Ensure(ctx context.Context, course *models.Course) error {
	w.ensured = append(w.ensured, *course)
	return nil
}

func strptr(s string) *string { return &s }

func fallTerm() models.Term {
	return models.Term{ID: "term-1", Season: models.SeasonFall, Year: 2025}
}

func catalogSection(crn, courseID, title string, days []string, start, end string) models.Section {
	return models.Section{
		CRN:       crn,
		CourseID:  courseID,
		Course:    courseID,
		Title:     title,
		Term:      "202515",
		Days:      days,
		StartTime: strptr(start),
		EndTime:   strptr(end),
	}
}

func newPlanService(events *stubPlanEventRepo, sections *stubSectionRepo) *PlanService {
	terms := newStubTermRepo(fallTerm())
	return NewPlanService(events, sections, &stubCourseWriter{}, terms, 3, nil, nil)
}

func TestPlanServiceAddCourseFansOutPerWeekday(t *testing.T) {
	events := newStubPlanEventRepo()
	sections := newStubSectionRepo(
		catalogSection("12345", "CS-164", "Intro to CS", []string{"Monday", "Wednesday", "Friday"}, "09:00", "10:20"))
	svc := newPlanService(events, sections)

	resp, err := svc.AddCourse(context.Background(), "term-1", AddCourseRequest{CRN: "12345"})
	require.NoError(t, err)
	assert.True(t, resp.Scheduled)
	require.Len(t, resp.Events, 3)
	for _, ev := range resp.Events {
		assert.Equal(t, models.EventCourse, ev.Type)
		assert.Equal(t, "12345", ev.CRNValue())
		assert.Equal(t, "CS-164: Intro to CS", ev.Title)
		assert.True(t, ev.Start.Before(ev.End))
	}
	assert.Equal(t, 1, events.addCalls)
}

func TestPlanServiceAddCourseRejectsDuplicate(t *testing.T) {
	events := newStubPlanEventRepo()
	sections := newStubSectionRepo(
		catalogSection("12345", "CS-164", "Intro to CS", []string{"Monday"}, "09:00", "10:20"))
	svc := newPlanService(events, sections)

	_, err := svc.AddCourse(context.Background(), "term-1", AddCourseRequest{CRN: "12345"})
	require.NoError(t, err)

	_, err = svc.AddCourse(context.Background(), "term-1", AddCourseRequest{CRN: "12345"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, 1, events.addCalls)
}

func TestPlanServiceAddCourseAllowsOverlaps(t *testing.T) {
	events := newStubPlanEventRepo()
	sections := newStubSectionRepo(
		catalogSection("12345", "CS-164", "Intro to CS", []string{"Monday"}, "09:00", "10:20"),
		catalogSection("22222", "MATH-201", "Linear Algebra", []string{"Monday"}, "10:00", "11:15"))
	svc := newPlanService(events, sections)

	_, err := svc.AddCourse(context.Background(), "term-1", AddCourseRequest{CRN: "12345"})
	require.NoError(t, err)

	// Overlapping sections still commit; conflicts surface in the report.
	_, err = svc.AddCourse(context.Background(), "term-1", AddCourseRequest{CRN: "22222"})
	require.NoError(t, err)
	assert.Equal(t, 2, events.addCalls)
}

func TestPlanServiceAddCourseWithoutSchedule(t *testing.T) {
	events := newStubPlanEventRepo()
	online := models.Section{CRN: "99999", CourseID: "CS-500", Course: "CS-500", Title: "Online Seminar", Term: "202515"}
	sections := newStubSectionRepo(online)
	svc := newPlanService(events, sections)

	resp, err := svc.AddCourse(context.Background(), "term-1", AddCourseRequest{CRN: "99999"})
	require.NoError(t, err)
	assert.False(t, resp.Scheduled)
	assert.Empty(t, resp.Events)
	assert.NotEmpty(t, resp.Message)

	// The membership exists even with no calendar events.
	planned, err := svc.ListPlanned(context.Background(), "term-1")
	require.NoError(t, err)
	require.Len(t, planned, 1)
	assert.Equal(t, "99999", planned[0].Membership.CRN)
}

func TestPlanServiceAddCourseUnknownCRN(t *testing.T) {
	svc := newPlanService(newStubPlanEventRepo(), newStubSectionRepo())

	_, err := svc.AddCourse(context.Background(), "term-1", AddCourseRequest{CRN: "00000"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestPlanServiceRemoveCourseDropsWholeGroup(t *testing.T) {
	events := newStubPlanEventRepo()
	sections := newStubSectionRepo(
		catalogSection("12345", "CS-164", "Intro to CS", []string{"Monday", "Wednesday"}, "09:00", "10:20"))
	svc := newPlanService(events, sections)

	_, err := svc.AddCourse(context.Background(), "term-1", AddCourseRequest{CRN: "12345"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveCourse(context.Background(), "term-1", "12345"))

	remaining, err := events.ListByTerm(context.Background(), "term-1")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestPlanServiceCreateBlockValidatesRange(t *testing.T) {
	svc := newPlanService(newStubPlanEventRepo(), newStubSectionRepo())

	at := time.Date(2025, time.September, 3, 14, 0, 0, 0, time.Local)
	_, err := svc.CreateBlock(context.Background(), "term-1", CreateBlockRequest{Start: at, End: at})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestPlanServiceCreateBlockEnforcesLimit(t *testing.T) {
	events := newStubPlanEventRepo()
	svc := newPlanService(events, newStubSectionRepo())

	at := time.Date(2025, time.September, 3, 8, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		_, err := svc.CreateBlock(context.Background(), "term-1", CreateBlockRequest{
			Start: at.Add(time.Duration(i) * 2 * time.Hour),
			End:   at.Add(time.Duration(i)*2*time.Hour + time.Hour),
		})
		require.NoError(t, err)
	}

	_, err := svc.CreateBlock(context.Background(), "term-1", CreateBlockRequest{
		Start: at.Add(12 * time.Hour),
		End:   at.Add(13 * time.Hour),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
}

func TestPlanServiceCreateBlockDefaultsTitle(t *testing.T) {
	svc := newPlanService(newStubPlanEventRepo(), newStubSectionRepo())

	at := time.Date(2025, time.September, 3, 14, 0, 0, 0, time.Local)
	block, err := svc.CreateBlock(context.Background(), "term-1", CreateBlockRequest{Start: at, End: at.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "Unavailable", block.Title)
	assert.Equal(t, models.EventUnavailable, block.Type)
}

func TestPlanServiceUpdateBlockRejectsCourseEvents(t *testing.T) {
	events := newStubPlanEventRepo()
	sections := newStubSectionRepo(
		catalogSection("12345", "CS-164", "Intro to CS", []string{"Monday"}, "09:00", "10:20"))
	svc := newPlanService(events, sections)

	resp, err := svc.AddCourse(context.Background(), "term-1", AddCourseRequest{CRN: "12345"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Events)

	newTitle := "Moved"
	_, err = svc.UpdateBlock(context.Background(), "term-1", resp.Events[0].ID, UpdateBlockRequest{Title: &newTitle})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
}

func TestPlanServiceUpdateBlockMovesBlock(t *testing.T) {
	events := newStubPlanEventRepo()
	svc := newPlanService(events, newStubSectionRepo())

	at := time.Date(2025, time.September, 3, 14, 0, 0, 0, time.Local)
	block, err := svc.CreateBlock(context.Background(), "term-1", CreateBlockRequest{Title: "Work", Start: at, End: at.Add(2 * time.Hour)})
	require.NoError(t, err)

	newStart := at.Add(24 * time.Hour)
	newEnd := newStart.Add(time.Hour)
	updated, err := svc.UpdateBlock(context.Background(), "term-1", block.ID, UpdateBlockRequest{Start: &newStart, End: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, newStart, updated.Start)
	assert.Equal(t, newEnd, updated.End)
	assert.Equal(t, "Work", updated.Title)
}

func TestPlanServiceDeleteBlockNotFound(t *testing.T) {
	svc := newPlanService(newStubPlanEventRepo(), newStubSectionRepo())

	err := svc.DeleteBlock(context.Background(), "term-1", "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
