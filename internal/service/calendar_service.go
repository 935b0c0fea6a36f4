package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/openclass/planner-api/internal/dto"
	"github.com/openclass/planner-api/internal/models"
	"github.com/openclass/planner-api/internal/schedule"
	appErrors "github.com/openclass/planner-api/pkg/errors"
)

type conflictReporter interface {
	Snapshot(ctx context.Context, termID string) (schedule.CommittedSet, error)
	Compute(ctx context.Context, termID string) (*schedule.Report, error)
}

type termReader interface {
	FindByID(ctx context.Context, id string) (*models.Term, error)
}

// CalendarService materializes committed plans into renderable calendar
// events and iCalendar feeds.
type CalendarService struct {
	terms     termReader
	conflicts conflictReporter
	logger    *zap.Logger
}

// NewCalendarService creates a calendar service instance.
func NewCalendarService(terms termReader, conflicts conflictReporter, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{terms: terms, conflicts: conflicts, logger: logger}
}

// EventsForTerm shapes the term's committed plan for week-grid
// rendering. Course events become recurring entries with wall-clock
// times derived from their stored instants; unavailable blocks pass
// through as editable one-offs. Events of conflicted courses carry the
// has_conflict flag.
func (s *CalendarService) EventsForTerm(ctx context.Context, termID string) (*dto.CalendarResponse, error) {
	term, err := s.terms.FindByID(ctx, termID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}

	committed, err := s.conflicts.Snapshot(ctx, termID)
	if err != nil {
		return nil, err
	}
	report, err := s.conflicts.Compute(ctx, termID)
	if err != nil {
		return nil, err
	}

	events := make([]dto.CalendarEvent, 0, len(committed.Events))
	for _, ev := range committed.Events {
		if ev.IsCourse() {
			events = append(events, s.courseEvent(ev, *term, committed, report))
			continue
		}
		start, end := ev.Start, ev.End
		events = append(events, dto.CalendarEvent{
			ID:       ev.ID,
			Type:     string(ev.Type),
			Title:    ev.Title,
			Start:    &start,
			End:      &end,
			Editable: true,
		})
	}

	return &dto.CalendarResponse{TermID: termID, Events: events}, nil
}

func (s *CalendarService) courseEvent(ev models.PlanEvent, term models.Term, committed schedule.CommittedSet, report *schedule.Report) dto.CalendarEvent {
	p := schedule.PlaceEvent(ev, term)
	from, until := p.RecurFrom, p.RecurTo

	courseID := ev.CRNValue()
	if sec, ok := committed.Sections[ev.CRNValue()]; ok {
		courseID = sec.CourseID
	}

	crn := ev.CRNValue()
	return dto.CalendarEvent{
		ID:          ev.ID,
		Type:        string(ev.Type),
		Title:       ev.Title,
		CRN:         &crn,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		DaysOfWeek:  []int{int(p.Weekday)},
		StartRecur:  &from,
		EndRecur:    &until,
		Editable:    false,
		HasConflict: report.HasConflict(courseID),
	}
}

// ICS renders the term's committed plan as an iCalendar feed. Course
// events carry weekly recurrence rules bounded by the term window;
// unavailable blocks are single events.
func (s *CalendarService) ICS(ctx context.Context, termID string) ([]byte, error) {
	term, err := s.terms.FindByID(ctx, termID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}

	committed, err := s.conflicts.Snapshot(ctx, termID)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//openclass//planner-api//EN")

	now := time.Now().UTC()
	for _, ev := range committed.Events {
		entry := cal.AddEvent(fmt.Sprintf("%s@planner", ev.ID))
		entry.SetDtStampTime(now)
		entry.SetSummary(ev.Title)

		if !ev.IsCourse() {
			entry.SetStartAt(ev.Start)
			entry.SetEndAt(ev.End)
			continue
		}

		p := schedule.PlaceEvent(ev, *term)
		entry.SetStartAt(p.Start)
		entry.SetEndAt(p.End)
		entry.AddRrule(fmt.Sprintf("FREQ=WEEKLY;UNTIL=%s", p.RecurTo.UTC().Format("20060102T150405Z")))
	}

	s.logger.Debug("ics feed rendered", zap.String("term_id", termID), zap.Int("events", len(committed.Events)))
	return []byte(cal.Serialize()), nil
}
