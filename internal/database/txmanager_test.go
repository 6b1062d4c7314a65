package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestNewTxManager(t *testing.T) {
	db, _ := newMockDB(t)

	txManager := NewTxManager(db)
	assert.NotNil(t, txManager)
	assert.IsType(t, &sqlTxManager{}, txManager)
}

func TestWithTx_Success(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	txManager := NewTxManager(db)
	ctx := context.Background()

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		// Verify transaction is in context
		tx := ctx.Value(txKey{})
		assert.NotNil(t, tx)
		assert.IsType(t, &sql.Tx{}, tx)
		return nil
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	txManager := NewTxManager(db)
	ctx := context.Background()

	testError := assert.AnError
	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		return testError
	})

	assert.Equal(t, testError, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(assert.AnError)

	txManager := NewTxManager(db)
	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		t.Fatal("function should not be called when begin fails")
		return nil
	})

	assert.Equal(t, assert.AnError, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTx(t *testing.T) {
	db, mock := newMockDB(t)

	t.Run("without transaction returns db", func(t *testing.T) {
		querier := GetTx(context.Background(), db)
		assert.Equal(t, db, querier)
	})

	t.Run("with transaction returns tx", func(t *testing.T) {
		mock.ExpectBegin()
		tx, err := db.Begin()
		require.NoError(t, err)

		ctx := context.WithValue(context.Background(), txKey{}, tx)
		querier := GetTx(ctx, db)
		assert.Equal(t, tx, querier)
	})
}
