package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	supplierID := uuid.New()
	categoryID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(100, supplierID, categoryID, "X1", "x1-128", decimal.NewFromInt(10), decimal.NewFromInt(12), 5)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, int64(100), product.ExternalID)
		assert.Equal(t, supplierID, product.SupplierID)
		assert.Equal(t, categoryID, product.CategoryID)
		assert.Equal(t, "X1", product.Name)
		assert.Equal(t, "x1-128", product.Model)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(10)))
		assert.True(t, product.PriceRRC.Equal(decimal.NewFromInt(12)))
		assert.Equal(t, 5, product.Quantity)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct(101, supplierID, categoryID, "X1", "", decimal.NewFromInt(10), decimal.NewFromInt(12), 5)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, int64(101), event.ExternalID)
		assert.Equal(t, 5, event.Quantity)
	})

	t.Run("fails with non-positive external id", func(t *testing.T) {
		_, err := NewProduct(0, supplierID, categoryID, "X1", "", decimal.NewFromInt(10), decimal.NewFromInt(12), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "external id")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(100, supplierID, categoryID, "", "", decimal.NewFromInt(10), decimal.NewFromInt(12), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct(100, supplierID, categoryID, "X1", "", decimal.NewFromInt(-1), decimal.NewFromInt(12), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})

	t.Run("fails with negative quantity", func(t *testing.T) {
		_, err := NewProduct(100, supplierID, categoryID, "X1", "", decimal.NewFromInt(10), decimal.NewFromInt(12), -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity cannot be negative")
	})
}

func TestProductApplyFeedEntry(t *testing.T) {
	supplierID := uuid.New()
	categoryID := uuid.New()

	newProduct := func(t *testing.T) *Product {
		product, err := NewProduct(100, supplierID, categoryID, "X1", "x1-128", decimal.NewFromInt(10), decimal.NewFromInt(12), 5)
		require.NoError(t, err)
		product.ClearDomainEvents()
		return product
	}

	t.Run("overwrites all feed fields", func(t *testing.T) {
		product := newProduct(t)
		newCategory := uuid.New()

		err := product.ApplyFeedEntry(newCategory, "X1 Pro", "x1-256", decimal.NewFromInt(15), decimal.NewFromInt(18), 3)
		require.NoError(t, err)

		assert.Equal(t, newCategory, product.CategoryID)
		assert.Equal(t, "X1 Pro", product.Name)
		assert.Equal(t, "x1-256", product.Model)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, 2, product.GetVersion())
	})

	t.Run("replaces quantity absolutely", func(t *testing.T) {
		product := newProduct(t)

		err := product.ApplyFeedEntry(categoryID, "X1", "x1-128", decimal.NewFromInt(10), decimal.NewFromInt(12), 3)
		require.NoError(t, err)
		assert.Equal(t, 3, product.Quantity)

		err = product.ApplyFeedEntry(categoryID, "X1", "x1-128", decimal.NewFromInt(10), decimal.NewFromInt(12), 3)
		require.NoError(t, err)
		assert.Equal(t, 3, product.Quantity, "re-applying the same entry must not accumulate")
	})

	t.Run("publishes ProductUpdated event", func(t *testing.T) {
		product := newProduct(t)

		err := product.ApplyFeedEntry(categoryID, "X1", "x1-128", decimal.NewFromInt(10), decimal.NewFromInt(12), 7)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductUpdated, events[0].EventType())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		product := newProduct(t)

		err := product.ApplyFeedEntry(categoryID, "X1", "x1-128", decimal.NewFromInt(10), decimal.NewFromInt(12), -2)
		require.Error(t, err)
		assert.Equal(t, 5, product.Quantity, "failed update must not mutate the product")
	})
}

func TestProductHasStock(t *testing.T) {
	product, err := NewProduct(100, uuid.New(), uuid.New(), "X1", "", decimal.NewFromInt(10), decimal.NewFromInt(12), 5)
	require.NoError(t, err)

	assert.True(t, product.HasStock(1))
	assert.True(t, product.HasStock(5))
	assert.False(t, product.HasStock(6))
	assert.False(t, product.HasStock(0))
	assert.False(t, product.HasStock(-1))
	assert.True(t, product.InStock())

	product.Quantity = 0
	assert.False(t, product.InStock())
	assert.False(t, product.HasStock(1))
}
