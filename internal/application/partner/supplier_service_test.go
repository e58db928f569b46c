package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/partner"
	"github.com/markethub/backend/internal/domain/shared"
)

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

var _ partner.SupplierRepository = (*MockSupplierRepository)(nil)

func TestSupplierService_SetAcceptingOrders(t *testing.T) {
	userID := uuid.New()

	newSupplier := func(t *testing.T) *partner.Supplier {
		t.Helper()
		supplier, err := partner.NewSupplier(userID, "Svyaznoy")
		require.NoError(t, err)
		supplier.ClearDomainEvents()
		return supplier
	}

	t.Run("closes the shop for orders", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo, zap.NewNop())
		supplier := newSupplier(t)

		repo.On("FindByUserID", mock.Anything, userID).Return(supplier, nil)
		repo.On("Save", mock.Anything, supplier).Return(nil)

		resp, err := service.SetAcceptingOrders(context.Background(), userID, false)
		require.NoError(t, err)
		assert.False(t, resp.AcceptingOrders)
	})

	t.Run("reopening is idempotent", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo, zap.NewNop())
		supplier := newSupplier(t)

		repo.On("FindByUserID", mock.Anything, userID).Return(supplier, nil)
		repo.On("Save", mock.Anything, supplier).Return(nil)

		resp, err := service.SetAcceptingOrders(context.Background(), userID, true)
		require.NoError(t, err)
		assert.True(t, resp.AcceptingOrders)
		assert.Empty(t, supplier.GetDomainEvents())
	})

	t.Run("user without a shop gets not found", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo, zap.NewNop())

		repo.On("FindByUserID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		_, err := service.SetAcceptingOrders(context.Background(), userID, false)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSupplierService_GetOwnSupplier(t *testing.T) {
	userID := uuid.New()
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo, zap.NewNop())

	supplier, err := partner.NewSupplier(userID, "Svyaznoy")
	require.NoError(t, err)
	repo.On("FindByUserID", mock.Anything, userID).Return(supplier, nil)

	resp, err := service.GetOwnSupplier(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Svyaznoy", resp.Name)
	assert.True(t, resp.AcceptingOrders)
}
