package partner

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSupplier = "Supplier"

// Event type constants
const (
	EventTypeSupplierCreated      = "SupplierCreated"
	EventTypeSupplierStateChanged = "SupplierStateChanged"
)

// SupplierCreatedEvent is published when a new supplier is registered
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
}

// NewSupplierCreatedEvent creates a new SupplierCreatedEvent
func NewSupplierCreatedEvent(supplier *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierCreated, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		UserID:          supplier.UserID,
		Name:            supplier.Name,
	}
}

// SupplierStateChangedEvent is published when a supplier opens or closes for orders
type SupplierStateChangedEvent struct {
	shared.BaseDomainEvent
	SupplierID      uuid.UUID `json:"supplier_id"`
	AcceptingOrders bool      `json:"accepting_orders"`
}

// NewSupplierStateChangedEvent creates a new SupplierStateChangedEvent
func NewSupplierStateChangedEvent(supplier *Supplier) *SupplierStateChangedEvent {
	return &SupplierStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierStateChanged, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		AcceptingOrders: supplier.AcceptingOrders,
	}
}
