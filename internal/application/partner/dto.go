package partner

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/partner"
)

// ContactRequest represents a request to create or update a delivery contact
type ContactRequest struct {
	City     string `json:"city" binding:"required,max=100"`
	Street   string `json:"street" binding:"required,max=200"`
	House    string `json:"house" binding:"max=20"`
	Building string `json:"building" binding:"max=20"`
	Flat     string `json:"flat" binding:"max=20"`
	Phone    string `json:"phone" binding:"required,max=30"`
}

// ContactResponse represents a delivery contact in API responses
type ContactResponse struct {
	ID       uuid.UUID `json:"id"`
	City     string    `json:"city"`
	Street   string    `json:"street"`
	House    string    `json:"house,omitempty"`
	Building string    `json:"building,omitempty"`
	Flat     string    `json:"flat,omitempty"`
	Phone    string    `json:"phone"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	URL             string    `json:"url,omitempty"`
	AcceptingOrders bool      `json:"accepting_orders"`
}

// UpdateSupplierStateRequest toggles order acceptance for a supplier
type UpdateSupplierStateRequest struct {
	AcceptingOrders *bool `json:"accepting_orders" binding:"required"`
}

// ToContactResponse converts a contact to its response form
func ToContactResponse(contact *partner.Contact) *ContactResponse {
	return &ContactResponse{
		ID:       contact.ID,
		City:     contact.City,
		Street:   contact.Street,
		House:    contact.House,
		Building: contact.Building,
		Flat:     contact.Flat,
		Phone:    contact.Phone,
	}
}

// ToSupplierResponse converts a supplier to its response form
func ToSupplierResponse(supplier *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:              supplier.ID,
		Name:            supplier.Name,
		URL:             supplier.URL,
		AcceptingOrders: supplier.AcceptingOrders,
	}
}
