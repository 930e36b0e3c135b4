package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashLockName_Stable(t *testing.T) {
	assert.Equal(t, hashLockName("warmup"), hashLockName("warmup"))
	assert.NotEqual(t, hashLockName("warmup"), hashLockName("other"))
}

func expectTryLock(mock sqlmock.Sqlmock, name string, ok bool) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pg_try_advisory_lock($1)")).
		WithArgs(hashLockName(name)).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(ok))
}

func TestAdvisoryLock_Acquire(t *testing.T) {
	db, mock := newMockDB(t)
	lock := NewAdvisoryLock(db)
	expectTryLock(mock, "warmup", true)

	acquired, err := lock.Acquire(context.Background(), "warmup", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	// held locally, so no second round trip
	acquired, err = lock.Acquire(context.Background(), "warmup", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLock_AcquireContended(t *testing.T) {
	db, mock := newMockDB(t)
	lock := NewAdvisoryLock(db)
	expectTryLock(mock, "warmup", false)

	acquired, err := lock.Acquire(context.Background(), "warmup", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
	assert.Empty(t, lock.held)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLock_AcquireError(t *testing.T) {
	db, mock := newMockDB(t)
	lock := NewAdvisoryLock(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pg_try_advisory_lock($1)")).
		WillReturnError(errors.New("connection reset"))

	acquired, err := lock.Acquire(context.Background(), "warmup", time.Minute)
	assert.Error(t, err)
	assert.False(t, acquired)
	assert.Empty(t, lock.held)
}

func TestAdvisoryLock_Release(t *testing.T) {
	db, mock := newMockDB(t)
	lock := NewAdvisoryLock(db)
	expectTryLock(mock, "warmup", true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pg_advisory_unlock($1)")).
		WithArgs(hashLockName("warmup")).
		WillReturnRows(sqlmock.NewRows([]string{"pg_advisory_unlock"}).AddRow(true))
	expectTryLock(mock, "warmup", true)

	ctx := context.Background()
	acquired, err := lock.Acquire(ctx, "warmup", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, lock.Release(ctx, "warmup"))

	acquired, err = lock.Acquire(ctx, "warmup", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLock_ReleaseNotHeld(t *testing.T) {
	db, mock := newMockDB(t)

	assert.NoError(t, NewAdvisoryLock(db).Release(context.Background(), "warmup"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLock_Ping(t *testing.T) {
	db, err := sqlmockWithPing(t)
	require.NoError(t, err)
	assert.NoError(t, NewAdvisoryLock(db).Ping(context.Background()))
}

func sqlmockWithPing(t *testing.T) (*DB, error) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { sqlDB.Close() })
	mock.ExpectPing()
	return &DB{DB: sqlDB}, nil
}
