package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%Hop%", containsPattern("Hop"))
	assert.Equal(t, "%%", containsPattern(""))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}

func TestVenueRepository_SearchByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "venue" WHERE LOWER(name) LIKE LOWER($1)`)).
		WithArgs("%HOP%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "upcoming_shows_count"}).
			AddRow(1, "The Musical Hop", "San Francisco", "CA", 0))

	venues, err := repo.SearchByName(context.Background(), "HOP")

	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "The Musical Hop", venues[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_SearchByName_NoMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "venue" WHERE LOWER(name) LIKE LOWER($1)`)).
		WithArgs("%zzz%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	venues, err := repo.SearchByName(context.Background(), "zzz")

	require.NoError(t, err)
	assert.Empty(t, venues)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_CreateCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)
	tr := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "venue"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	venue := &models.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA"}
	err := tr.Transaction(context.Background(), func(tx *gorm.DB) error {
		return repo.Create(context.Background(), tx, venue)
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), venue.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_CreateFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)
	tr := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "venue"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := tr.Transaction(context.Background(), func(tx *gorm.DB) error {
		return repo.Create(context.Background(), tx, &models.Venue{Name: "The Musical Hop"})
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)
	tr := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tr.Transaction(context.Background(), func(tx *gorm.DB) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_DeleteByID_MissingRowIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)
	tr := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "venue" WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	var affected int64
	err := tr.Transaction(context.Background(), func(tx *gorm.DB) error {
		var err error
		affected, err = repo.DeleteByID(context.Background(), tx, 42)
		return err
	})

	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_IncrementShowCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)
	tr := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "venue" SET "upcoming_shows_count"=upcoming_shows_count + $1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "venue" SET "past_shows_count"=past_shows_count + $1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tr.Transaction(context.Background(), func(tx *gorm.DB) error {
		if err := repo.IncrementShowCount(context.Background(), tx, 1, true); err != nil {
			return err
		}
		return repo.IncrementShowCount(context.Background(), tx, 1, false)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "venue" WHERE "venue"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	venue, err := repo.FindByID(context.Background(), nil, 99)

	assert.Nil(t, venue)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_FindWithShows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepository(db)
	start := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "venue" WHERE "venue"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "The Musical Hop"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "show" WHERE "show"."venue_id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "venue_id", "artist_id", "start_time", "upcoming"}).
			AddRow(1, 1, 4, start, true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "artist" WHERE "artist"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_link"}).
			AddRow(4, "Guns N Petals", "https://img/gnp.png"))

	venue, err := repo.FindWithShows(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, venue.Shows, 1)
	require.NotNil(t, venue.Shows[0].Artist)
	assert.Equal(t, "Guns N Petals", venue.Shows[0].Artist.Name)
	assert.True(t, venue.Shows[0].Upcoming)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_FindAllSelectsIDAndName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArtistRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","name" FROM "artist" ORDER BY id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(4, "Guns N Petals").
			AddRow(5, "Matt Quevedo"))

	artists, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Matt Quevedo", artists[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowRepository_CreateForeignKeyViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShowRepository(db)
	tr := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "show"`)).
		WillReturnError(errors.New(`violates foreign key constraint "show_venue_id_fkey"`))
	mock.ExpectRollback()

	err := tr.Transaction(context.Background(), func(tx *gorm.DB) error {
		return repo.Create(context.Background(), tx, &models.Show{VenueID: 99, ArtistID: 4, Upcoming: true})
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_RecordIgnoresDuplicates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "activity"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT ("routing_key","subject_id","occurred_at") DO NOTHING`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	err := repo.Record(context.Background(), &models.Activity{
		RoutingKey:  "venue.created",
		SubjectKind: models.SubjectVenue,
		SubjectID:   1,
		Summary:     "Venue The Musical Hop was listed",
		OccurredAt:  time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
