package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Supplier represents a shop that publishes price feeds into the catalog.
// A supplier belongs to exactly one user account with the supplier role.
// Orders can only be placed against products of a supplier that is
// currently accepting orders; a feed from a non-accepting supplier is
// rejected at the upload boundary.
type Supplier struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name            string    `gorm:"type:varchar(200);not null"`
	URL             string    `gorm:"type:varchar(300)"`
	AcceptingOrders bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier for a user account
func NewSupplier(userID uuid.UUID, name string) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Name:              name,
		AcceptingOrders:   true,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// Rename updates the supplier's display name
func (s *Supplier) Rename(name string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetURL sets the supplier's site URL
func (s *Supplier) SetURL(url string) error {
	if len(url) > 300 {
		return shared.NewDomainError("INVALID_URL", "URL cannot exceed 300 characters")
	}

	s.URL = url
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// OpenForOrders marks the supplier as accepting orders
func (s *Supplier) OpenForOrders() {
	if s.AcceptingOrders {
		return
	}

	s.AcceptingOrders = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStateChangedEvent(s))
}

// CloseForOrders marks the supplier as not accepting orders
func (s *Supplier) CloseForOrders() {
	if !s.AcceptingOrders {
		return
	}

	s.AcceptingOrders = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStateChangedEvent(s))
}

// validateSupplierName validates the supplier name
func validateSupplierName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}
