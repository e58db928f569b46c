package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
)

func newConfirmedOrder(t *testing.T, userID uuid.UUID) *ordering.Order {
	t.Helper()
	order, err := ordering.NewBasket(userID)
	require.NoError(t, err)
	_, err = order.PutItem(uuid.New(), "X1", 2, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, order.Confirm(uuid.New()))
	order.ClearDomainEvents()
	return order
}

func TestOrderServiceListOrders(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo)

	placed := []ordering.Order{*newConfirmedOrder(t, userID)}
	orderRepo.On("FindPlacedByUser", ctx, userID, mock.AnythingOfType("shared.Filter")).Return(placed, nil)

	orders, err := service.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "confirmed", orders[0].Status)
	assert.True(t, orders[0].Total.Equal(decimal.NewFromInt(20)))
}

func TestOrderServiceGetOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns own order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo)

		order := newConfirmedOrder(t, userID)
		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		response, err := service.GetOrder(ctx, userID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, response.ID)
	})

	t.Run("hides another user's order as not found", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo)

		order := newConfirmedOrder(t, uuid.New())
		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.GetOrder(ctx, userID, order.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderServiceLifecycleTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("walks confirmed order through fulfillment", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo)

		order := newConfirmedOrder(t, uuid.New())
		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		response, err := service.StartProcessing(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "in_progress", response.Status)

		response, err = service.Ship(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "shipping", response.Status)

		response, err = service.Complete(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "completed", response.Status)
	})

	t.Run("rejects invalid transition", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo)

		order := newConfirmedOrder(t, uuid.New())
		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.Complete(ctx, order.ID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATE", domainCode(t, err))
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
