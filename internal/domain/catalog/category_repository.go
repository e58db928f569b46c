package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its exact name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryMappingRepository defines the interface for supplier category
// mapping persistence. Mappings persist across ingestion runs.
type CategoryMappingRepository interface {
	// FindBySupplierAndExternalID finds the mapping for a supplier's feed-local category id
	FindBySupplierAndExternalID(ctx context.Context, supplierID uuid.UUID, externalID int64) (*SupplierCategoryMapping, error)

	// FindBySupplier finds all mappings for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]SupplierCategoryMapping, error)

	// Save creates or updates a mapping
	Save(ctx context.Context, mapping *SupplierCategoryMapping) error
}
