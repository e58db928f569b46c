package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its internal ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByExternalID finds a product by its supplier-global external ID
	FindByExternalID(ctx context.Context, externalID int64) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindBySupplier finds all products belonging to a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByCategory finds all products in a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// DecrementQuantity atomically decrements a product's stock by the given
	// amount, guarded so the quantity can never go below zero. It returns
	// shared.ErrInsufficientStock when the guard rejects the decrement and
	// shared.ErrNotFound when the product does not exist.
	DecrementQuantity(ctx context.Context, id uuid.UUID, quantity int) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ParameterRepository defines the interface for the parameter dictionary
type ParameterRepository interface {
	// FindByID finds a parameter by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Parameter, error)

	// FindByName finds a parameter by its unique name
	FindByName(ctx context.Context, name string) (*Parameter, error)

	// Save creates or updates a parameter
	Save(ctx context.Context, parameter *Parameter) error
}

// ProductParameterRepository defines the interface for product parameter values
type ProductParameterRepository interface {
	// FindByProduct finds all parameter values for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductParameter, error)

	// FindByProductAndParameter finds the value row for a (product, parameter) pair
	FindByProductAndParameter(ctx context.Context, productID, parameterID uuid.UUID) (*ProductParameter, error)

	// Save creates or updates a product parameter value
	Save(ctx context.Context, value *ProductParameter) error
}
