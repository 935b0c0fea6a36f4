package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/openclass/planner-api/internal/models"
)

// Report is the conflict picture for a whole term.
type Report struct {
	Conflicts []models.ConflictRecord

	flagged map[string]struct{}
}

// HasConflict reports whether any record mentions the course, either as
// the attributed side or as an overlap counterpart.
func (r *Report) HasConflict(courseID string) bool {
	_, ok := r.flagged[courseID]
	return ok
}

// CountsByType tallies records per conflict type.
func (r *Report) CountsByType() map[models.ConflictType]int {
	counts := make(map[models.ConflictType]int)
	for _, rec := range r.Conflicts {
		counts[rec.Type]++
	}
	return counts
}

func (r *Report) flag(courseID string) {
	if courseID != "" {
		r.flagged[courseID] = struct{}{}
	}
}

// ComputeConflicts evaluates every committed course against the rest of
// the committed set. Each overlapping pair is reported once, attributed
// to the side with the lexicographically smaller CRN. The coreqsByCourse
// map must already exclude requirements satisfied by completed
// coursework.
func ComputeConflicts(committed CommittedSet, coreqsByCourse map[string][]models.Corequisite) *Report {
	report := &Report{flagged: make(map[string]struct{})}

	perCRN := make(map[string][]models.PlanEvent)
	for _, ev := range committed.CourseEvents() {
		crn := ev.CRNValue()
		perCRN[crn] = append(perCRN[crn], ev)
	}
	crns := make([]string, 0, len(perCRN))
	for crn := range perCRN {
		crns = append(crns, crn)
	}
	sort.Strings(crns)

	for _, crn := range crns {
		if dup := duplicateGroup(perCRN[crn]); dup {
			courseID, title := committedIdentity(committed, crn, perCRN[crn])
			report.Conflicts = append(report.Conflicts, models.ConflictRecord{
				Type:       models.ConflictDuplicate,
				CourseID:   courseID,
				CourseName: title,
				Details: []models.ConflictDetail{
					{ID: crn, Name: fmt.Sprintf("CRN %s", crn)},
				},
			})
			report.flag(courseID)
		}
	}

	for i, crn := range crns {
		hits := make(map[string]string)
		for _, other := range crns[i+1:] {
			if eventGroupsOverlap(perCRN[crn], perCRN[other]) {
				hits[other] = perCRN[other][0].Title
				counterpartID, _ := committedIdentity(committed, other, perCRN[other])
				report.flag(counterpartID)
			}
		}
		if len(hits) > 0 {
			courseID, title := committedIdentity(committed, crn, perCRN[crn])
			report.Conflicts = append(report.Conflicts, models.ConflictRecord{
				Type:       models.ConflictOverlap,
				CourseID:   courseID,
				CourseName: title,
				Details:    sortedDetails(hits),
			})
			report.flag(courseID)
		}
	}

	unavailable := committed.UnavailableEvents()
	for _, crn := range crns {
		hits := make(map[string]string)
		for _, block := range unavailable {
			if eventGroupsOverlap(perCRN[crn], []models.PlanEvent{block}) {
				start := block.Start.Local()
				hits[block.ID] = fmt.Sprintf("%s (%s %s-%s)", block.Title, start.Weekday(), ClockOf(start), ClockOf(block.End.Local()))
			}
		}
		if len(hits) > 0 {
			courseID, title := committedIdentity(committed, crn, perCRN[crn])
			report.Conflicts = append(report.Conflicts, models.ConflictRecord{
				Type:       models.ConflictUnavailableOverlap,
				CourseID:   courseID,
				CourseName: title,
				Details:    sortedDetails(hits),
			})
			report.flag(courseID)
		}
	}

	scheduled := make(map[string]struct{})
	for _, id := range committed.CourseIDs() {
		scheduled[id] = struct{}{}
	}
	for _, courseID := range committed.CourseIDs() {
		hits := make(map[string]string)
		for _, cq := range coreqsByCourse[courseID] {
			if _, ok := scheduled[cq.CoreqID]; !ok {
				hits[cq.CoreqID] = cq.CoreqName
			}
		}
		if len(hits) > 0 {
			report.Conflicts = append(report.Conflicts, models.ConflictRecord{
				Type:       models.ConflictMissingCorequisite,
				CourseID:   courseID,
				CourseName: courseTitle(committed, courseID),
				Details:    sortedDetails(hits),
			})
			report.flag(courseID)
		}
	}

	return report
}

// duplicateGroup detects the same CRN committed more than once: a clean
// group has at most one event per weekday.
func duplicateGroup(events []models.PlanEvent) bool {
	perDay := make(map[time.Weekday]int)
	for _, ev := range events {
		wd := ev.Start.Local().Weekday()
		perDay[wd]++
		if perDay[wd] > 1 {
			return true
		}
	}
	return false
}

// eventGroupsOverlap reports whether any event of one group collides
// with any event of the other on the same weekday.
func eventGroupsOverlap(a, b []models.PlanEvent) bool {
	for _, ea := range a {
		sa := ea.Start.Local()
		for _, eb := range b {
			sb := eb.Start.Local()
			if sa.Weekday() != sb.Weekday() {
				continue
			}
			if TimeRangesOverlap(ClockOf(sa), ClockOf(ea.End.Local()), ClockOf(sb), ClockOf(eb.End.Local())) {
				return true
			}
		}
	}
	return false
}

// committedIdentity resolves a CRN to its course ID and display title,
// falling back to the event rows when the section snapshot is missing.
func committedIdentity(committed CommittedSet, crn string, events []models.PlanEvent) (string, string) {
	if sec, ok := committed.sectionFor(crn); ok {
		return sec.CourseID, sec.Title
	}
	if len(events) > 0 {
		return crn, events[0].Title
	}
	return crn, crn
}

func courseTitle(committed CommittedSet, courseID string) string {
	for _, crn := range sortedCRNs(committed) {
		sec := committed.Sections[crn]
		if sec.CourseID == courseID {
			return sec.Title
		}
	}
	return courseID
}

func sortedCRNs(committed CommittedSet) []string {
	crns := make([]string, 0, len(committed.Sections))
	for crn := range committed.Sections {
		crns = append(crns, crn)
	}
	sort.Strings(crns)
	return crns
}
