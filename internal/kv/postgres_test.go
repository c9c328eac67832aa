package kv

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresStoreMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store, err := NewPostgresStore(sqlxDB)
	require.NoError(t, err)

	return store, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"value"}).AddRow([]byte(`["a@x.com"]`))
	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("pmory_subscribers").
		WillReturnRows(rows)

	value, err := store.Get(context.Background(), "pmory_subscribers")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a@x.com"]`), value)
}

func TestPostgresStoreGetMissing(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("pmory_mentors").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := store.Get(context.Background(), "pmory_mentors")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresStoreSet(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("pmory_jobs", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Set(context.Background(), "pmory_jobs", []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM kv_entries").
		WithArgs("user_email").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "user_email"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
