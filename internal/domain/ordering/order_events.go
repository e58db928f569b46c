package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated       = "OrderCreated"
	EventTypeOrderConfirmed     = "OrderConfirmed"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderCreatedEvent is published when a new basket is opened for a user
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
	}
}

// OrderConfirmedEvent is published after a basket has been confirmed into a
// placed order with stock decremented. Consumers use it for post-commit side
// effects such as the confirmation email.
type OrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID       `json:"order_id"`
	UserID    uuid.UUID       `json:"user_id"`
	ContactID uuid.UUID       `json:"contact_id"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// NewOrderConfirmedEvent creates a new OrderConfirmedEvent
func NewOrderConfirmedEvent(order *Order) *OrderConfirmedEvent {
	var contactID uuid.UUID
	if order.ContactID != nil {
		contactID = *order.ContactID
	}
	return &OrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderConfirmed, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		ContactID:       contactID,
		ItemCount:       len(order.Items),
		Total:           order.Total(),
	}
}

// OrderStatusChangedEvent is published on post-confirmation lifecycle transitions
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID   `json:"order_id"`
	UserID    uuid.UUID   `json:"user_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, oldStatus, newStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
