package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclass/planner-api/internal/models"
)

func sectionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"crn", "course_id", "course", "title", "credits",
		"instruction_method", "instruction_type", "term",
		"days", "start_time", "end_time", "instructors",
	})
}

func TestSectionRepositoryListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	rows := sectionRows().
		AddRow("11111", "CS-101", "CS 101", "Intro to CS", 3.0,
			"Lecture", "In Person", "202515",
			[]byte(`["Monday","Wednesday"]`), "09:00", "09:50", []byte(`[]`))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sections WHERE 1=1 AND term = $1 AND (course ILIKE $2 OR title ILIKE $2) ORDER BY course, crn LIMIT 20 OFFSET 0")).
		WithArgs("202515", "%intro%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sections WHERE 1=1 AND term = $1 AND (course ILIKE $2 OR title ILIKE $2)")).
		WithArgs("202515", "%intro%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	sections, total, err := repo.List(context.Background(), models.SectionFilter{Term: "202515", Query: "intro"})
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "11111", sections[0].CRN)
	assert.Equal(t, models.StringList{"Monday", "Wednesday"}, sections[0].Days)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepositoryListClampsPageSize(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sections WHERE 1=1 ORDER BY course, crn LIMIT 20 OFFSET 40")).
		WillReturnRows(sectionRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sections WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.List(context.Background(), models.SectionFilter{Page: 3, PageSize: 500})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepositoryFindByCRNs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	rows := sectionRows().
		AddRow("11111", "CS-101", "CS 101", "Intro to CS", 3.0,
			"Lecture", "In Person", "202515",
			[]byte(`["Monday"]`), "09:00", "09:50", []byte(`[]`)).
		AddRow("22222", "CS-164", "CS 164", "Programming I", 4.0,
			"Lecture", "In Person", "202515",
			[]byte(`["Tuesday"]`), "10:00", "11:50", []byte(`[{"name":"Rivera"}]`))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sections WHERE crn IN ($1, $2)")).
		WithArgs("11111", "22222").
		WillReturnRows(rows)

	sections, err := repo.FindByCRNs(context.Background(), []string{"11111", "22222"})
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "CS-164", sections[1].CourseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepositoryFindByCRNsEmptyInput(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	sections, err := repo.FindByCRNs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, sections)
}
