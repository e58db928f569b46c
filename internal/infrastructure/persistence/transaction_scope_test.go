package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appordering "github.com/markethub/backend/internal/application/ordering"
	"github.com/markethub/backend/internal/domain/shared"
)

func TestTranslateConflict(t *testing.T) {
	t.Run("maps serialization failure to concurrency conflict", func(t *testing.T) {
		err := &pgconn.PgError{Code: "40001", Message: "could not serialize access due to concurrent update"}

		assert.ErrorIs(t, translateConflict(err), shared.ErrConcurrencyConflict)
	})

	t.Run("maps deadlock to concurrency conflict", func(t *testing.T) {
		err := &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}

		assert.ErrorIs(t, translateConflict(err), shared.ErrConcurrencyConflict)
	})

	t.Run("unwraps driver errors wrapped by the transaction layer", func(t *testing.T) {
		err := fmt.Errorf("transaction failed: %w", &pgconn.PgError{Code: "40001"})

		assert.ErrorIs(t, translateConflict(err), shared.ErrConcurrencyConflict)
	})

	t.Run("maps the basket unique-index race to concurrency conflict", func(t *testing.T) {
		err := &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "idx_orders_user_basket",
			Message:        `duplicate key value violates unique constraint "idx_orders_user_basket"`,
		}

		assert.ErrorIs(t, translateConflict(err), shared.ErrConcurrencyConflict)
	})

	t.Run("leaves other postgres errors untouched", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "products_external_id_key", Message: "duplicate key value violates unique constraint"}

		translated := translateConflict(err)

		assert.NotErrorIs(t, translated, shared.ErrConcurrencyConflict)
		assert.Equal(t, err, translated)
	})

	t.Run("leaves non-driver errors untouched", func(t *testing.T) {
		err := errors.New("boom")

		assert.Equal(t, err, translateConflict(err))
	})
}

func TestGormTransactionScope_Execute(t *testing.T) {
	t.Run("translates conflicts surfaced inside the transaction", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		scope := NewGormTransactionScope(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := scope.Execute(context.Background(), func(repos appordering.TransactionalRepositories) error {
			return fmt.Errorf("decrement stock: %w", &pgconn.PgError{Code: "40001"})
		})

		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commits when the callback succeeds", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		scope := NewGormTransactionScope(db)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := scope.Execute(context.Background(), func(repos appordering.TransactionalRepositories) error {
			require.NotNil(t, repos.OrderRepo())
			require.NotNil(t, repos.ProductRepo())
			return nil
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
