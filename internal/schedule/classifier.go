package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/openclass/planner-api/internal/models"
)

// CommittedSet is a snapshot of everything already sitting on a term's
// calendar: the stored plan events plus the section rows behind the
// course events, keyed by CRN.
type CommittedSet struct {
	Events   []models.PlanEvent
	Sections map[string]models.Section
}

// CourseEvents returns the committed course-kind events.
func (cs CommittedSet) CourseEvents() []models.PlanEvent {
	var out []models.PlanEvent
	for _, ev := range cs.Events {
		if ev.IsCourse() {
			out = append(out, ev)
		}
	}
	return out
}

// UnavailableEvents returns the committed unavailable blocks.
func (cs CommittedSet) UnavailableEvents() []models.PlanEvent {
	var out []models.PlanEvent
	for _, ev := range cs.Events {
		if !ev.IsCourse() {
			out = append(out, ev)
		}
	}
	return out
}

// HasCRN reports whether any committed course event carries the CRN.
func (cs CommittedSet) HasCRN(crn string) bool {
	for _, ev := range cs.Events {
		if ev.IsCourse() && ev.CRNValue() == crn {
			return true
		}
	}
	return false
}

// CourseIDs returns the distinct course IDs of the committed sections,
// sorted for deterministic iteration.
func (cs CommittedSet) CourseIDs() []string {
	seen := make(map[string]struct{}, len(cs.Sections))
	for _, sec := range cs.Sections {
		seen[sec.CourseID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// sectionFor resolves the committed section behind a course event, if
// the snapshot still has it.
func (cs CommittedSet) sectionFor(crn string) (models.Section, bool) {
	sec, ok := cs.Sections[crn]
	return sec, ok
}

// ClassifySection evaluates a candidate section against a committed set
// and returns at most one record per conflict type, in a fixed order:
// duplicate, overlap, unavailable-overlap, missing-corequisite. The
// coreqs argument must already exclude requirements satisfied by
// completed coursework.
func ClassifySection(sec models.Section, committed CommittedSet, coreqs []models.Corequisite) []models.ConflictRecord {
	var records []models.ConflictRecord

	if committed.HasCRN(sec.CRN) {
		records = append(records, models.ConflictRecord{
			Type:       models.ConflictDuplicate,
			CourseID:   sec.CourseID,
			CourseName: sec.Title,
			Details: []models.ConflictDetail{
				{ID: sec.CRN, Name: fmt.Sprintf("CRN %s", sec.CRN)},
			},
		})
	}

	if details := courseOverlaps(sec, committed); len(details) > 0 {
		records = append(records, models.ConflictRecord{
			Type:       models.ConflictOverlap,
			CourseID:   sec.CourseID,
			CourseName: sec.Title,
			Details:    details,
		})
	}

	if details := unavailableOverlaps(sec, committed); len(details) > 0 {
		records = append(records, models.ConflictRecord{
			Type:       models.ConflictUnavailableOverlap,
			CourseID:   sec.CourseID,
			CourseName: sec.Title,
			Details:    details,
		})
	}

	if details := missingCorequisites(committed, coreqs); len(details) > 0 {
		records = append(records, models.ConflictRecord{
			Type:       models.ConflictMissingCorequisite,
			CourseID:   sec.CourseID,
			CourseName: sec.Title,
			Details:    details,
		})
	}

	return records
}

// OverlapsAnyCourse reports whether the candidate section's meetings
// collide with any committed course event for a different CRN.
func OverlapsAnyCourse(sec models.Section, committed CommittedSet) bool {
	return len(courseOverlaps(sec, committed)) > 0
}

// OverlapsAnyUnavailable reports whether the candidate section's meetings
// collide with any committed unavailable block.
func OverlapsAnyUnavailable(sec models.Section, committed CommittedSet) bool {
	return len(unavailableOverlaps(sec, committed)) > 0
}

func sectionMeetsOn(sec models.Section, wd time.Weekday) bool {
	for _, day := range sec.Days {
		if d, ok := WeekdayIndex(day); ok && d == wd {
			return true
		}
	}
	return false
}

func courseOverlaps(sec models.Section, committed CommittedSet) []models.ConflictDetail {
	if !sec.HasSchedule() {
		return nil
	}
	hits := make(map[string]string)
	for _, ev := range committed.CourseEvents() {
		crn := ev.CRNValue()
		if crn == sec.CRN {
			continue
		}
		start := ev.Start.Local()
		if !sectionMeetsOn(sec, start.Weekday()) {
			continue
		}
		if TimeRangesOverlap(*sec.StartTime, *sec.EndTime, ClockOf(start), ClockOf(ev.End.Local())) {
			hits[crn] = ev.Title
		}
	}
	return sortedDetails(hits)
}

func unavailableOverlaps(sec models.Section, committed CommittedSet) []models.ConflictDetail {
	if !sec.HasSchedule() {
		return nil
	}
	hits := make(map[string]string)
	for _, ev := range committed.UnavailableEvents() {
		start := ev.Start.Local()
		if !sectionMeetsOn(sec, start.Weekday()) {
			continue
		}
		if TimeRangesOverlap(*sec.StartTime, *sec.EndTime, ClockOf(start), ClockOf(ev.End.Local())) {
			hits[ev.ID] = fmt.Sprintf("%s (%s %s-%s)", ev.Title, start.Weekday(), ClockOf(start), ClockOf(ev.End.Local()))
		}
	}
	return sortedDetails(hits)
}

func missingCorequisites(committed CommittedSet, coreqs []models.Corequisite) []models.ConflictDetail {
	if len(coreqs) == 0 {
		return nil
	}
	scheduled := make(map[string]struct{})
	for _, id := range committed.CourseIDs() {
		scheduled[id] = struct{}{}
	}
	hits := make(map[string]string)
	for _, cq := range coreqs {
		if _, ok := scheduled[cq.CoreqID]; !ok {
			hits[cq.CoreqID] = cq.CoreqName
		}
	}
	return sortedDetails(hits)
}

func sortedDetails(hits map[string]string) []models.ConflictDetail {
	if len(hits) == 0 {
		return nil
	}
	details := make([]models.ConflictDetail, 0, len(hits))
	for id, name := range hits {
		details = append(details, models.ConflictDetail{ID: id, Name: name})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })
	return details
}
