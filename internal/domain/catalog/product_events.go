package catalog

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
)

// ProductCreatedEvent is published when a new product enters the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	ExternalID int64     `json:"external_id"`
	SupplierID uuid.UUID `json:"supplier_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		ExternalID:      product.ExternalID,
		SupplierID:      product.SupplierID,
		Name:            product.Name,
		Quantity:        product.Quantity,
	}
}

// ProductUpdatedEvent is published when a feed entry overwrites a product
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	ExternalID int64     `json:"external_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		ExternalID:      product.ExternalID,
		Name:            product.Name,
		Quantity:        product.Quantity,
	}
}
