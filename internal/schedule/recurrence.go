package schedule

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/openclass/planner-api/internal/models"
)

// rrule's weekday constants in Go's time.Weekday order, Sunday first.
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Placement is one weekly meeting slot projected onto a term window: a
// weekday, a clock range, and the instant of the first occurrence.
type Placement struct {
	Weekday   time.Weekday
	StartTime string
	EndTime   string
	Start     time.Time
	End       time.Time
	RecurFrom time.Time
	RecurTo   time.Time
}

// Rule builds the weekly recurrence rule for the placement, bounded by
// the term window.
func (p Placement) Rule() (*rrule.RRule, error) {
	return rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   p.Start,
		Until:     p.RecurTo,
		Byweekday: []rrule.Weekday{rruleWeekdays[p.Weekday]},
	})
}

// Occurrences expands the placement into concrete start instants inside
// the half-open term window.
func (p Placement) Occurrences() ([]time.Time, error) {
	r, err := p.Rule()
	if err != nil {
		return nil, err
	}
	all := r.Between(p.RecurFrom, p.RecurTo, true)
	out := all[:0]
	for _, t := range all {
		if t.Before(p.RecurTo) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ProjectSection places a scheduled section onto the given term's window,
// one Placement per meeting weekday. Sections without meeting data, and
// meeting days the engine does not recognize, project to nothing.
func ProjectSection(sec models.Section, term models.Term) []Placement {
	if !sec.HasSchedule() {
		return nil
	}
	from, until := term.RecurrenceWindow()
	var placements []Placement
	for _, day := range sec.Days {
		wd, ok := WeekdayIndex(day)
		if !ok {
			continue
		}
		p, err := placeWeekly(wd, *sec.StartTime, *sec.EndTime, from, until)
		if err != nil {
			continue
		}
		placements = append(placements, p)
	}
	sort.Slice(placements, func(i, j int) bool {
		return placements[i].Weekday < placements[j].Weekday
	})
	return placements
}

// PlaceEvent rebuilds the weekly placement of a stored course event from
// its instants: the weekday and wall-clock times come straight off the
// event's local start and end.
func PlaceEvent(ev models.PlanEvent, term models.Term) Placement {
	from, until := term.RecurrenceWindow()
	start, end := ev.Start.Local(), ev.End.Local()
	return Placement{
		Weekday:   start.Weekday(),
		StartTime: ClockOf(start),
		EndTime:   ClockOf(end),
		Start:     start,
		End:       end,
		RecurFrom: from,
		RecurTo:   until,
	}
}

func placeWeekly(wd time.Weekday, startClock, endClock string, from, until time.Time) (Placement, error) {
	startMin, err := ParseClock(startClock)
	if err != nil {
		return Placement{}, err
	}
	endMin, err := ParseClock(endClock)
	if err != nil {
		return Placement{}, err
	}
	day := firstWeekdayOn(from, wd)
	start := day.Add(time.Duration(startMin) * time.Minute)
	end := day.Add(time.Duration(endMin) * time.Minute)
	return Placement{
		Weekday:   wd,
		StartTime: clockFromMinutes(startMin),
		EndTime:   clockFromMinutes(endMin),
		Start:     start,
		End:       end,
		RecurFrom: from,
		RecurTo:   until,
	}, nil
}

// firstWeekdayOn returns midnight of the first day on or after from that
// falls on wd.
func firstWeekdayOn(from time.Time, wd time.Weekday) time.Time {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	offset := (int(wd) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

func clockFromMinutes(m int) string {
	return time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("15:04")
}
