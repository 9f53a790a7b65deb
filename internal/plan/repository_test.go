package plan

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func testPlan() *MembershipPlan {
	return &MembershipPlan{
		ID:           3,
		Name:         "Monthly",
		Description:  "Unlimited visits for 30 days",
		PriceCents:   499900,
		DurationDays: 30,
	}
}

func TestRepository_PurchaseMembership(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	p := testPlan()
	now := time.Now()
	validUntil := now.AddDate(0, 0, p.DurationDays)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(5, p.PriceCents, "Membership: Monthly").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO memberships")).
		WithArgs(5, p.ID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "plan_id", "status", "valid_from", "valid_until", "created_at"}).
			AddRow(1, 5, p.ID, MembershipActive, now, validUntil, now))
	mock.ExpectCommit()

	m, err := repo.PurchaseMembership(context.Background(), 5, p)
	require.NoError(t, err)
	assert.Equal(t, 5, m.MemberID)
	assert.Equal(t, MembershipActive, m.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PurchaseMembership_RollbackOnError(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	p := testPlan()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(5, p.PriceCents, "Membership: Monthly").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	m, err := repo.PurchaseMembership(context.Background(), 5, p)
	assert.Error(t, err)
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetPlanByID_NotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM membership_plans")).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := repo.GetPlanByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.Nil(t, p)
}

func TestRepository_GetActiveMembership_NoneIsNotAnError(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM memberships ms")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	m, err := repo.GetActiveMembership(context.Background(), 5)
	assert.NoError(t, err)
	assert.Nil(t, m)
}

func TestRepository_DeletePlan(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM membership_plans WHERE id = $1")).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeletePlan(context.Background(), 3))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM membership_plans WHERE id = $1")).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.DeletePlan(context.Background(), 4), ErrPlanNotFound)
}
