package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category with valid name", func(t *testing.T) {
		category, err := NewCategory("Phones")
		require.NoError(t, err)
		require.NotNil(t, category)

		assert.Equal(t, "Phones", category.Name)
		assert.NotEmpty(t, category.ID)
		assert.Equal(t, 1, category.GetVersion())
	})

	t.Run("publishes CategoryCreated event", func(t *testing.T) {
		category, err := NewCategory("Phones")
		require.NoError(t, err)

		events := category.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCategoryCreated, events[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestCategoryRename(t *testing.T) {
	category, err := NewCategory("Phones")
	require.NoError(t, err)

	err = category.Rename("Smartphones")
	require.NoError(t, err)
	assert.Equal(t, "Smartphones", category.Name)
	assert.Equal(t, 2, category.GetVersion())

	err = category.Rename("")
	require.Error(t, err)
	assert.Equal(t, "Smartphones", category.Name)
}

func TestNewSupplierCategoryMapping(t *testing.T) {
	supplierID := uuid.New()
	categoryID := uuid.New()

	t.Run("creates mapping", func(t *testing.T) {
		mapping, err := NewSupplierCategoryMapping(supplierID, 1, categoryID)
		require.NoError(t, err)

		assert.Equal(t, supplierID, mapping.SupplierID)
		assert.Equal(t, int64(1), mapping.ExternalID)
		assert.Equal(t, categoryID, mapping.CategoryID)
	})

	t.Run("rejects non-positive external id", func(t *testing.T) {
		_, err := NewSupplierCategoryMapping(supplierID, 0, categoryID)
		require.Error(t, err)
	})
}

func TestNewParameter(t *testing.T) {
	t.Run("creates parameter", func(t *testing.T) {
		parameter, err := NewParameter("color")
		require.NoError(t, err)
		assert.Equal(t, "color", parameter.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewParameter("")
		require.Error(t, err)
	})
}

func TestProductParameter(t *testing.T) {
	productID := uuid.New()
	parameterID := uuid.New()

	t.Run("creates value row", func(t *testing.T) {
		value, err := NewProductParameter(productID, parameterID, "black")
		require.NoError(t, err)
		assert.Equal(t, "black", value.Value)
	})

	t.Run("overwrites value", func(t *testing.T) {
		value, err := NewProductParameter(productID, parameterID, "black")
		require.NoError(t, err)

		err = value.UpdateValue("silver")
		require.NoError(t, err)
		assert.Equal(t, "silver", value.Value)
	})

	t.Run("rejects empty value", func(t *testing.T) {
		_, err := NewProductParameter(productID, parameterID, "")
		require.Error(t, err)
	})
}
