package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Parameter is a catalog-wide dictionary entry for attribute names
// (e.g. "color", "RAM"). Names are unique across the catalog.
type Parameter struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Parameter) TableName() string {
	return "parameters"
}

// NewParameter creates a new parameter
func NewParameter(name string) (*Parameter, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Parameter name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Parameter name cannot exceed 100 characters")
	}

	return &Parameter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// ProductParameter holds a product's value for a parameter.
// Unique per (product, parameter); re-ingestion overwrites the value
// rather than appending a second row.
type ProductParameter struct {
	shared.BaseEntity
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameter,priority:1"`
	ParameterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameter,priority:2"`
	Value       string    `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ProductParameter) TableName() string {
	return "product_parameters"
}

// NewProductParameter creates a new product parameter value
func NewProductParameter(productID, parameterID uuid.UUID, value string) (*ProductParameter, error) {
	if value == "" {
		return nil, shared.NewDomainError("INVALID_VALUE", "Parameter value cannot be empty")
	}
	if len(value) > 200 {
		return nil, shared.NewDomainError("INVALID_VALUE", "Parameter value cannot exceed 200 characters")
	}

	return &ProductParameter{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ParameterID: parameterID,
		Value:       value,
	}, nil
}

// UpdateValue overwrites the parameter value
func (pp *ProductParameter) UpdateValue(value string) error {
	if value == "" {
		return shared.NewDomainError("INVALID_VALUE", "Parameter value cannot be empty")
	}
	if len(value) > 200 {
		return shared.NewDomainError("INVALID_VALUE", "Parameter value cannot exceed 200 characters")
	}

	pp.Value = value
	pp.UpdatedAt = time.Now()

	return nil
}
