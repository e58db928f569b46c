package ordering

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order.
// The basket status is the mutable cart variant: at most one basket
// order exists per user at any time, and line items are frozen as soon
// as the order leaves it.
type OrderStatus string

const (
	OrderStatusBasket     OrderStatus = "basket"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusBasket, OrderStatusConfirmed, OrderStatusInProgress,
		OrderStatusShipping, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusBasket:
		return target == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return target == OrderStatusInProgress || target == OrderStatusCanceled
	case OrderStatusInProgress:
		return target == OrderStatusShipping || target == OrderStatusCanceled
	case OrderStatusShipping:
		return target == OrderStatusCompleted || target == OrderStatusCanceled
	case OrderStatusCompleted, OrderStatusCanceled:
		return false // Terminal states
	}
	return false
}

// OrderItem represents a line item in an order.
// Unique per (order, product): putting the same product again replaces
// the quantity instead of appending a second line.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_item_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_item_product,priority:2"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Price captured at add time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line
func NewOrderItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Amount returns the line total
func (i *OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer order aggregate root. It is created lazily
// in basket status on the first add-to-cart, confirmed into an immutable
// placed order, and never deleted afterwards, only transitioned.
type Order struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	ContactID   *uuid.UUID  `gorm:"type:uuid"` // Delivery address, set at confirmation
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'basket';index"`
	Items       []OrderItem `gorm:"foreignKey:OrderID"`
	ConfirmedAt *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewBasket creates a new order in basket status for a user
func NewBasket(userID uuid.UUID) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            OrderStatusBasket,
		Items:             make([]OrderItem, 0),
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// PutItem sets the line for a product to the given quantity, replacing any
// existing line for the same product. The quantity is absolute, not a delta:
// putting 2 then 5 leaves one line with quantity 5.
func (o *Order) PutItem(productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusBasket {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify items outside the basket")
	}

	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			if quantity <= 0 {
				return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
			}
			o.Items[idx].Quantity = quantity
			o.Items[idx].UnitPrice = unitPrice
			o.Items[idx].UpdatedAt = time.Now()
			o.UpdatedAt = time.Now()
			return &o.Items[idx], nil
		}
	}

	item, err := NewOrderItem(o.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem deletes the line for a product. Removing the last line keeps
// the basket alive; an empty basket is valid.
func (o *Order) RemoveItem(productID uuid.UUID) (*OrderItem, error) {
	if o.Status != OrderStatusBasket {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify items outside the basket")
	}

	for idx, item := range o.Items {
		if item.ProductID == productID {
			removed := item
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.UpdatedAt = time.Now()
			return &removed, nil
		}
	}

	return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the basket")
}

// ItemFor returns the line for a product, or nil if absent
func (o *Order) ItemFor(productID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}

// Total returns the order total over all lines
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].Amount())
	}
	return total
}

// IsEmpty returns true if the order has no lines
func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// Confirm transitions the basket into a placed order. An empty basket
// cannot be confirmed. Stock decrement happens outside the aggregate,
// in the same transaction as this transition.
func (o *Order) Confirm(contactID uuid.UUID) error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm an empty basket")
	}
	if contactID == uuid.Nil {
		return shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}

	now := time.Now()
	o.ContactID = &contactID
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderConfirmedEvent(o))

	return nil
}

// StartProcessing moves a confirmed order into fulfillment
func (o *Order) StartProcessing() error {
	return o.transitionTo(OrderStatusInProgress)
}

// Ship marks the order as handed to delivery
func (o *Order) Ship() error {
	return o.transitionTo(OrderStatusShipping)
}

// Complete marks the order as delivered
func (o *Order) Complete() error {
	return o.transitionTo(OrderStatusCompleted)
}

// Cancel cancels the order
func (o *Order) Cancel() error {
	return o.transitionTo(OrderStatusCanceled)
}

func (o *Order) transitionTo(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	oldStatus := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, target))

	return nil
}

// IsBasket returns true while the order is the user's live cart
func (o *Order) IsBasket() bool {
	return o.Status == OrderStatusBasket
}
