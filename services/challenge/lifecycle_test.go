package challenge

import (
	"testing"

	"fitflow/models/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gormDB, mock
}

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{postgres.ChallengeStatusPending, postgres.ChallengeStatusAccepted, true},
		{postgres.ChallengeStatusPending, postgres.ChallengeStatusDeclined, true},
		{postgres.ChallengeStatusAccepted, postgres.ChallengeStatusActive, true},
		{postgres.ChallengeStatusActive, postgres.ChallengeStatusCompleted, true},
		{postgres.ChallengeStatusPending, postgres.ChallengeStatusActive, false},
		{postgres.ChallengeStatusPending, postgres.ChallengeStatusCompleted, false},
		{postgres.ChallengeStatusAccepted, postgres.ChallengeStatusDeclined, false},
		{postgres.ChallengeStatusAccepted, postgres.ChallengeStatusCompleted, false},
		{postgres.ChallengeStatusActive, postgres.ChallengeStatusAccepted, false},
		{postgres.ChallengeStatusDeclined, postgres.ChallengeStatusActive, false},
		{postgres.ChallengeStatusCompleted, postgres.ChallengeStatusActive, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestAcceptWinsTransition(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "challenges" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	won, err := Accept(db, "ch-1")
	assert.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptAlreadyDecided(t *testing.T) {
	db, mock := setupMockDB(t)

	// Status no longer pending: the guarded UPDATE matches zero rows.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "challenges" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	won, err := Accept(db, "ch-1")
	assert.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecline(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "challenges" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	won, err := Decline(db, "ch-1")
	assert.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateRequiresAccepted(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "challenges" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	won, err := Activate(db, "ch-1")
	assert.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteCommitsSingleWinner(t *testing.T) {
	db, mock := setupMockDB(t)

	// First finisher wins the guarded UPDATE.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "challenges" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// The concurrent finisher finds status already completed.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "challenges" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	won, err := Complete(db, "ch-1", "ana@example.com")
	assert.NoError(t, err)
	assert.True(t, won)

	won, err = Complete(db, "ch-1", "bob@example.com")
	assert.NoError(t, err)
	assert.False(t, won)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExerciseFrozenWhenActive(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "challenges" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	changed, err := UpdateExercise(db, "ch-1", "30 Squats")
	assert.NoError(t, err)
	assert.False(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
