package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// Product represents a supplier's offer in the catalog.
// It is the aggregate root for catalog operations. ExternalID is the
// supplier-global key from the price feed and serves as the upsert key;
// ID is the internal surrogate. Quantity is the authoritative stock level
// and must never go negative, which the fulfillment path enforces with a
// guarded decrement rather than a read-modify-write.
type Product struct {
	shared.BaseAggregateRoot
	ExternalID int64           `gorm:"not null;uniqueIndex"`
	SupplierID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Model      string          `gorm:"type:varchar(100)"`
	Price      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PriceRRC   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Recommended retail price
	Quantity   int             `gorm:"not null;default:0;check:quantity >= 0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product from a feed entry
func NewProduct(externalID int64, supplierID, categoryID uuid.UUID, name, model string, price, priceRRC decimal.Decimal, quantity int) (*Product, error) {
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Product external id must be positive")
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrices(price, priceRRC); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Product quantity cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalID:        externalID,
		SupplierID:        supplierID,
		CategoryID:        categoryID,
		Name:              name,
		Model:             model,
		Price:             price,
		PriceRRC:          priceRRC,
		Quantity:          quantity,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// ApplyFeedEntry overwrites the product with the values from a fresh feed
// entry. Quantity is replaced absolutely, not added: a re-uploaded feed with
// quantity 5 resets stock to 5 regardless of intervening sales.
func (p *Product) ApplyFeedEntry(categoryID uuid.UUID, name, model string, price, priceRRC decimal.Decimal, quantity int) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validatePrices(price, priceRRC); err != nil {
		return err
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Product quantity cannot be negative")
	}

	p.CategoryID = categoryID
	p.Name = name
	p.Model = model
	p.Price = price
	p.PriceRRC = priceRRC
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// HasStock returns true if at least the requested quantity is available.
// This is an advisory check only; the authoritative check happens as a
// guarded decrement inside the confirmation transaction.
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Quantity
}

// InStock returns true if any stock remains
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validatePrices validates the price pair from a feed entry
func validatePrices(price, priceRRC decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if priceRRC.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Recommended retail price cannot be negative")
	}
	return nil
}
