package class

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestRepository_TakeScheduleSeat(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// seat available: the conditional update hits one row
	mock.ExpectExec(regexp.QuoteMeta("UPDATE class_schedules SET participants = participants + 1 WHERE id = $1 AND participants < capacity")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	taken, err := repo.TakeScheduleSeat(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, taken)

	// schedule full: guard matches no rows, no increment happens
	mock.ExpectExec(regexp.QuoteMeta("UPDATE class_schedules SET participants = participants + 1 WHERE id = $1 AND participants < capacity")).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	taken, err = repo.TakeScheduleSeat(context.Background(), 2)
	require.NoError(t, err)
	require.False(t, taken)
}

func TestRepository_IncrementEnrolled(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET enrolled = enrolled + 1 WHERE id = $1 AND enrolled < capacity")).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.IncrementEnrolled(context.Background(), 10)
	require.NoError(t, err)
	require.True(t, ok)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET enrolled = enrolled + 1 WHERE id = $1 AND enrolled < capacity")).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.IncrementEnrolled(context.Background(), 11)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRepository_CreateAndGetSchedule(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Now().Add(24 * time.Hour)
	end := start.Add(time.Hour)
	now := time.Now()

	cols := []string{"id", "class_id", "trainer_id", "gym_id", "room", "start_time", "end_time", "capacity", "participants", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_schedules")).
		WithArgs(10, 3, 1, "Studio A", start, end, 20).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 10, 3, 1, "Studio A", start, end, 20, 0, now))

	sched, err := repo.CreateSchedule(context.Background(), 10, 3, 1, "Studio A", start, end, 20)
	require.NoError(t, err)
	require.Equal(t, 1, sched.ID)
	require.Equal(t, 0, sched.Participants)

	mock.ExpectQuery(regexp.QuoteMeta("FROM class_schedules")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 10, 3, 1, "Studio A", start, end, 20, 5, now))

	got, err := repo.GetScheduleByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 5, got.Participants)
}

func TestRepository_GetClassByID_NotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM classes")).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	cls, err := repo.GetClassByID(context.Background(), 999)
	require.ErrorIs(t, err, ErrClassNotFound)
	require.Nil(t, cls)
}
