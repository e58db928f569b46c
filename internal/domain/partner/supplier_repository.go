package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByUserID finds the supplier owned by a user account
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Supplier, error)

	// FindAll finds all suppliers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error
}

// ContactRepository defines the interface for delivery contact persistence
type ContactRepository interface {
	// FindByID finds a contact by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)

	// FindByUser finds all contacts owned by a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// Delete deletes a contact
	Delete(ctx context.Context, id uuid.UUID) error
}
