package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Category represents a product category in the catalog.
// Categories are identified internally; suppliers reference them through
// SupplierCategoryMapping rows keyed by their feed-local identifiers.
type Category struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(100);not null;index"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Rename updates the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}

// SupplierCategoryMapping maps a supplier's feed-local category identifier
// to an internal Category. It is the idempotency key for category ingestion:
// re-ingesting the same (supplier, external id) pair must resolve to the
// same Category, never create a duplicate.
type SupplierCategoryMapping struct {
	shared.BaseEntity
	SupplierID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_category_external,priority:1"`
	ExternalID int64     `gorm:"not null;uniqueIndex:idx_supplier_category_external,priority:2"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (SupplierCategoryMapping) TableName() string {
	return "supplier_category_mappings"
}

// NewSupplierCategoryMapping creates a new mapping for a supplier's external category id
func NewSupplierCategoryMapping(supplierID uuid.UUID, externalID int64, categoryID uuid.UUID) (*SupplierCategoryMapping, error) {
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External category id must be positive")
	}

	return &SupplierCategoryMapping{
		BaseEntity: shared.NewBaseEntity(),
		SupplierID: supplierID,
		ExternalID: externalID,
		CategoryID: categoryID,
	}, nil
}
