package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx_Commit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payments").
		WithArgs(int64(7500), "pay-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	manager := NewTxManager(db)
	err = manager.WithTx(context.Background(), func(ctx context.Context) error {
		querier := GetTx(ctx, db)
		_, execErr := querier.ExecContext(ctx,
			"UPDATE payments SET refunded_cents = $1 WHERE id = $2", int64(7500), "pay-1")
		return execErr
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	manager := NewTxManager(db)
	sentinel := errors.New("write failed")
	err = manager.WithTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	manager := NewTxManager(db)
	err = manager.WithTx(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTx_FallsBackToDB(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	querier := GetTx(context.Background(), db)
	assert.Equal(t, db, querier)
}
