package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclass/planner-api/internal/models"
)

func strptr(s string) *string { return &s }

func scheduledSection(crn, courseID, title string, days []string, start, end string) models.Section {
	return models.Section{
		CRN:       crn,
		CourseID:  courseID,
		Course:    courseID,
		Title:     title,
		Days:      days,
		StartTime: strptr(start),
		EndTime:   strptr(end),
	}
}

func fall2025() models.Term {
	return models.Term{ID: "term-1", Season: models.SeasonFall, Year: 2025}
}

func TestProjectSectionOnePlacementPerWeekday(t *testing.T) {
	sec := scheduledSection("12345", "CS-164", "Intro to CS", []string{"Monday", "Wednesday"}, "09:00", "10:20")

	placements := ProjectSection(sec, fall2025())
	require.Len(t, placements, 2)

	assert.Equal(t, time.Monday, placements[0].Weekday)
	assert.Equal(t, time.Wednesday, placements[1].Weekday)
	for _, p := range placements {
		assert.Equal(t, "09:00", p.StartTime)
		assert.Equal(t, "10:20", p.EndTime)
		assert.Equal(t, p.Weekday, p.Start.Weekday())
	}
}

func TestProjectSectionSkipsUnknownDays(t *testing.T) {
	sec := scheduledSection("12345", "CS-164", "Intro to CS", []string{"Monday", "Someday"}, "09:00", "10:20")

	placements := ProjectSection(sec, fall2025())
	require.Len(t, placements, 1)
	assert.Equal(t, time.Monday, placements[0].Weekday)
}

func TestProjectSectionWithoutSchedule(t *testing.T) {
	online := models.Section{CRN: "99999", CourseID: "CS-500", Title: "Online Seminar"}
	assert.Nil(t, ProjectSection(online, fall2025()))
}

func TestPlacementOccurrencesStayInsideWindow(t *testing.T) {
	sec := scheduledSection("12345", "CS-164", "Intro to CS", []string{"Monday"}, "09:00", "10:20")
	term := fall2025()

	placements := ProjectSection(sec, term)
	require.Len(t, placements, 1)

	occ, err := placements[0].Occurrences()
	require.NoError(t, err)
	require.NotEmpty(t, occ)

	from, until := term.RecurrenceWindow()
	first := occ[0]
	assert.Equal(t, time.Date(2025, time.September, 1, 9, 0, 0, 0, time.Local), first)
	for i, at := range occ {
		assert.Equal(t, time.Monday, at.Weekday())
		assert.Equal(t, "09:00", ClockOf(at))
		assert.False(t, at.Before(from), "occurrence %d before window", i)
		assert.True(t, at.Before(until), "occurrence %d outside window", i)
	}
	// Sept 1 2025 is a Monday; 13 Mondays fall before Dec 1.
	assert.Len(t, occ, 13)
}

func TestPlaceEventDerivesFromInstants(t *testing.T) {
	term := fall2025()
	crn := "12345"
	ev := models.PlanEvent{
		ID:     "ev-1",
		TermID: term.ID,
		Type:   models.EventCourse,
		Title:  "CS-164: Intro to CS",
		CRN:    &crn,
		Start:  time.Date(2025, time.September, 3, 15, 0, 0, 0, time.Local),
		End:    time.Date(2025, time.September, 3, 16, 15, 0, 0, time.Local),
	}

	p := PlaceEvent(ev, term)
	assert.Equal(t, time.Wednesday, p.Weekday)
	assert.Equal(t, "15:00", p.StartTime)
	assert.Equal(t, "16:15", p.EndTime)

	from, until := term.RecurrenceWindow()
	assert.Equal(t, from, p.RecurFrom)
	assert.Equal(t, until, p.RecurTo)
}
