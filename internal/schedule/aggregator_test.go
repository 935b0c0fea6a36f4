package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclass/planner-api/internal/models"
)

func TestComputeConflictsCleanSchedule(t *testing.T) {
	term := fall2025()
	committed := committedWith(term, t,
		scheduledSection("12345", "CS-164", "Intro to CS", []string{"Monday", "Wednesday"}, "09:00", "10:20"),
		scheduledSection("22222", "MATH-201", "Linear Algebra", []string{"Monday", "Wednesday"}, "10:20", "11:40"))

	report := ComputeConflicts(committed, nil)
	assert.Empty(t, report.Conflicts)
	assert.False(t, report.HasConflict("CS-164"))
	assert.False(t, report.HasConflict("MATH-201"))
}

func TestComputeConflictsOverlapReportedOnce(t *testing.T) {
	term := fall2025()
	committed := committedWith(term, t,
		scheduledSection("12345", "CS-164", "Intro to CS", []string{"Monday"}, "09:00", "10:20"),
		scheduledSection("22222", "MATH-201", "Linear Algebra", []string{"Monday"}, "10:00", "11:15"))

	report := ComputeConflicts(committed, nil)
	require.Len(t, report.Conflicts, 1)

	rec := report.Conflicts[0]
	assert.Equal(t, models.ConflictOverlap, rec.Type)
	// Attributed to the side with the smaller CRN.
	assert.Equal(t, "CS-164", rec.CourseID)
	require.Len(t, rec.Details, 1)
	assert.Equal(t, "22222", rec.Details[0].ID)

	// Both sides are flagged for calendar highlighting.
	assert.True(t, report.HasConflict("CS-164"))
	assert.True(t, report.HasConflict("MATH-201"))
}

func TestComputeConflictsDuplicateCRN(t *testing.T) {
	term := fall2025()
	sec := scheduledSection("12345", "CS-164", "Intro to CS", []string{"Monday"}, "09:00", "10:20")
	committed := committedWith(term, t, sec)
	// The same group committed a second time.
	committed.Events = append(committed.Events, courseEventsFor(t, sec, term)...)

	report := ComputeConflicts(committed, nil)

	var dup *models.ConflictRecord
	for i := range report.Conflicts {
		if report.Conflicts[i].Type == models.ConflictDuplicate {
			dup = &report.Conflicts[i]
		}
	}
	require.NotNil(t, dup)
	require.Len(t, dup.Details, 1)
	assert.Equal(t, "12345", dup.Details[0].ID)
	assert.True(t, report.HasConflict("CS-164"))
}

func TestComputeConflictsUnavailableOverlap(t *testing.T) {
	term := fall2025()
	committed := committedWith(term, t,
		scheduledSection("33333", "PHYS-101", "Mechanics", []string{"Wednesday"}, "15:00", "16:00"))
	committed.Events = append(committed.Events, unavailableBlock("blk-1", time.Wednesday, "14:00", "16:00"))

	report := ComputeConflicts(committed, nil)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, models.ConflictUnavailableOverlap, report.Conflicts[0].Type)
	assert.Equal(t, "PHYS-101", report.Conflicts[0].CourseID)
	require.Len(t, report.Conflicts[0].Details, 1)
	assert.Equal(t, "blk-1", report.Conflicts[0].Details[0].ID)
}

func TestComputeConflictsMissingCorequisite(t *testing.T) {
	term := fall2025()
	committed := committedWith(term, t,
		scheduledSection("44444", "CHEM-101", "General Chemistry", []string{"Friday"}, "09:00", "10:20"))

	coreqs := map[string][]models.Corequisite{
		"CHEM-101": {{CourseID: "CHEM-101", CoreqID: "CHEM-101L", CoreqName: "General Chemistry Lab"}},
	}

	report := ComputeConflicts(committed, coreqs)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, models.ConflictMissingCorequisite, report.Conflicts[0].Type)
	assert.Equal(t, "CHEM-101L", report.Conflicts[0].Details[0].ID)
}

func TestComputeConflictsCorequisiteScheduledIsClean(t *testing.T) {
	term := fall2025()
	committed := committedWith(term, t,
		scheduledSection("44444", "CHEM-101", "General Chemistry", []string{"Friday"}, "09:00", "10:20"),
		scheduledSection("55555", "CHEM-101L", "General Chemistry Lab", []string{"Thursday"}, "13:00", "15:50"))

	coreqs := map[string][]models.Corequisite{
		"CHEM-101": {{CourseID: "CHEM-101", CoreqID: "CHEM-101L", CoreqName: "General Chemistry Lab"}},
	}

	report := ComputeConflicts(committed, coreqs)
	assert.Empty(t, report.Conflicts)
}

func TestComputeConflictsSameCourseSectionsOverlap(t *testing.T) {
	term := fall2025()
	committed := committedWith(term, t,
		scheduledSection("11111", "CS-164", "Intro to CS", []string{"Monday"}, "09:00", "10:20"),
		scheduledSection("22222", "CS-164", "Intro to CS", []string{"Monday"}, "10:00", "11:15"))

	report := ComputeConflicts(committed, nil)
	require.Len(t, report.Conflicts, 1)

	rec := report.Conflicts[0]
	assert.Equal(t, models.ConflictOverlap, rec.Type)
	assert.Equal(t, "CS-164", rec.CourseID)
	require.Len(t, rec.Details, 1)
	assert.Equal(t, "22222", rec.Details[0].ID)
	assert.True(t, report.HasConflict("CS-164"))
}

func TestComputeConflictsSummaryCounts(t *testing.T) {
	term := fall2025()
	committed := committedWith(term, t,
		scheduledSection("12345", "CS-164", "Intro to CS", []string{"Monday"}, "09:00", "10:20"),
		scheduledSection("22222", "MATH-201", "Linear Algebra", []string{"Monday"}, "10:00", "11:15"),
		scheduledSection("44444", "CHEM-101", "General Chemistry", []string{"Friday"}, "09:00", "10:20"))

	coreqs := map[string][]models.Corequisite{
		"CHEM-101": {{CourseID: "CHEM-101", CoreqID: "CHEM-101L", CoreqName: "General Chemistry Lab"}},
	}

	report := ComputeConflicts(committed, coreqs)
	counts := report.CountsByType()
	assert.Equal(t, 1, counts[models.ConflictOverlap])
	assert.Equal(t, 1, counts[models.ConflictMissingCorequisite])
	assert.Equal(t, 0, counts[models.ConflictDuplicate])
}

func TestComputeConflictsDeterministicOrder(t *testing.T) {
	term := fall2025()
	build := func() *Report {
		committed := committedWith(term, t,
			scheduledSection("22222", "MATH-201", "Linear Algebra", []string{"Monday"}, "10:00", "11:15"),
			scheduledSection("12345", "CS-164", "Intro to CS", []string{"Monday"}, "09:00", "10:20"),
			scheduledSection("33333", "PHYS-101", "Mechanics", []string{"Monday"}, "09:30", "11:00"))
		return ComputeConflicts(committed, nil)
	}

	first := build()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.Conflicts, build().Conflicts)
	}
}
