package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	appordering "github.com/markethub/backend/internal/application/ordering"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
)

// Postgres error codes surfaced as retryable concurrency conflicts.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

// basketUniqueIndex backs the one-basket-per-user rule. Two first adds
// racing to create the basket make the loser trip it; a retry then finds
// the winner's row, so the violation is retryable rather than fatal.
const basketUniqueIndex = "idx_orders_user_basket"

// GormTransactionScope implements TransactionScope using GORM transactions.
// The repositories handed to the callback all run on the same transaction,
// so the confirmation path's stock decrement and status transition commit
// or roll back as one unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. Postgres
// serialization failures and deadlocks are translated to
// shared.ErrConcurrencyConflict so callers can retry.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appordering.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	if err != nil {
		return translateConflict(err)
	}
	return nil
}

// gormTransactionalRepositories exposes the fulfillment repositories bound
// to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormTransactionalRepositories) OrderRepo() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// translateConflict maps retryable Postgres errors to the domain sentinel,
// leaving everything else untouched.
func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected:
			return shared.ErrConcurrencyConflict
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == basketUniqueIndex:
			return shared.ErrConcurrencyConflict
		}
	}
	return err
}

// Ensure GormTransactionScope implements TransactionScope
var _ appordering.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appordering.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
