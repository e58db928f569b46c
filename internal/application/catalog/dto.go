package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/catalog"
)

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductResponse represents a product list entry
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	ExternalID int64           `json:"external_id"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	CategoryID uuid.UUID       `json:"category_id"`
	Name       string          `json:"name"`
	Model      string          `json:"model,omitempty"`
	Price      decimal.Decimal `json:"price"`
	PriceRRC   decimal.Decimal `json:"price_rrc"`
	Quantity   int             `json:"quantity"`
	InStock    bool            `json:"in_stock"`
}

// ParameterValueResponse is one named characteristic of a product
type ParameterValueResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductDetailResponse adds resolved names and parameters to a product
type ProductDetailResponse struct {
	ProductResponse
	CategoryName string                   `json:"category_name,omitempty"`
	SupplierName string                   `json:"supplier_name,omitempty"`
	Parameters   []ParameterValueResponse `json:"parameters"`
}

// ToCategoryResponse converts a category to its response form
func ToCategoryResponse(category *catalog.Category) *CategoryResponse {
	return &CategoryResponse{ID: category.ID, Name: category.Name}
}

// ToProductResponse converts a product to its response form
func ToProductResponse(product *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:         product.ID,
		ExternalID: product.ExternalID,
		SupplierID: product.SupplierID,
		CategoryID: product.CategoryID,
		Name:       product.Name,
		Model:      product.Model,
		Price:      product.Price,
		PriceRRC:   product.PriceRRC,
		Quantity:   product.Quantity,
		InStock:    product.InStock(),
	}
}
