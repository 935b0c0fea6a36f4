package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclass/planner-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "postgres"), mock, func() { db.Close() }
}

func TestTermRepositoryFindOrCreateExisting(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	rows := sqlmock.NewRows([]string{"id", "season", "year", "created_at", "updated_at"}).
		AddRow("term-1", "Fall", 2025, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, season, year, created_at, updated_at FROM terms WHERE season = $1 AND year = $2")).
		WithArgs("Fall", 2025).
		WillReturnRows(rows)

	term, err := repo.FindOrCreate(context.Background(), models.SeasonFall, 2025)
	require.NoError(t, err)
	assert.Equal(t, "term-1", term.ID)
	assert.Equal(t, models.SeasonFall, term.Season)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTermRepositoryFindOrCreateInserts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, season, year, created_at, updated_at FROM terms WHERE season = $1 AND year = $2")).
		WithArgs("Winter", 2025).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO terms").
		WithArgs(sqlmock.AnyArg(), "Winter", 2025, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	term, err := repo.FindOrCreate(context.Background(), models.SeasonWinter, 2025)
	require.NoError(t, err)
	assert.NotEmpty(t, term.ID)
	assert.Equal(t, 2025, term.Year)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTermRepositoryFindOrCreateLosesRace(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, season, year, created_at, updated_at FROM terms WHERE season = $1 AND year = $2")).
		WithArgs("Spring", 2026).
		WillReturnError(sql.ErrNoRows)
	// The insert hits the unique constraint and affects no rows.
	mock.ExpectExec("INSERT INTO terms").
		WithArgs(sqlmock.AnyArg(), "Spring", 2026, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, season, year, created_at, updated_at FROM terms WHERE season = $1 AND year = $2")).
		WithArgs("Spring", 2026).
		WillReturnRows(sqlmock.NewRows([]string{"id", "season", "year", "created_at", "updated_at"}).
			AddRow("term-2", "Spring", 2026, time.Now(), time.Now()))

	term, err := repo.FindOrCreate(context.Background(), models.SeasonSpring, 2026)
	require.NoError(t, err)
	assert.Equal(t, "term-2", term.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTermRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	rows := sqlmock.NewRows([]string{"id", "season", "year", "created_at", "updated_at"}).
		AddRow("term-1", "Fall", 2025, time.Now(), time.Now()).
		AddRow("term-2", "Winter", 2025, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, season, year, created_at, updated_at FROM terms ORDER BY year DESC, season ASC")).
		WillReturnRows(rows)

	terms, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, terms, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
