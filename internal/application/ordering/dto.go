package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/ordering"
)

// CartItemResponse represents a basket line in API responses
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// CartResponse represents the user's live basket. Empty is true when the
// user has never opened a basket; ShowCart reports that as a valid result,
// not an error.
type CartResponse struct {
	OrderID uuid.UUID          `json:"order_id,omitempty"`
	Empty   bool               `json:"empty"`
	Items   []CartItemResponse `json:"items"`
	Total   decimal.Decimal    `json:"total"`
}

// OrderResponse represents a placed order in API responses
type OrderResponse struct {
	ID          uuid.UUID          `json:"id"`
	Status      string             `json:"status"`
	ContactID   *uuid.UUID         `json:"contact_id,omitempty"`
	Items       []CartItemResponse `json:"items"`
	Total       decimal.Decimal    `json:"total"`
	CreatedAt   time.Time          `json:"created_at"`
	ConfirmedAt *time.Time         `json:"confirmed_at,omitempty"`
}

// AddToCartRequest is the payload for adding a product to the basket
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// ConfirmOrderRequest is the payload for confirming the basket
type ConfirmOrderRequest struct {
	ContactID uuid.UUID `json:"contact_id" binding:"required"`
}

// toItemResponses maps order lines to responses
func toItemResponses(items []ordering.OrderItem) []CartItemResponse {
	responses := make([]CartItemResponse, 0, len(items))
	for idx := range items {
		item := &items[idx]
		responses = append(responses, CartItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		})
	}
	return responses
}

// ToCartResponse maps a basket order to a cart response
func ToCartResponse(order *ordering.Order) CartResponse {
	return CartResponse{
		OrderID: order.ID,
		Items:   toItemResponses(order.Items),
		Total:   order.Total(),
	}
}

// EmptyCartResponse returns the explicit empty-cart result
func EmptyCartResponse() CartResponse {
	return CartResponse{
		Empty: true,
		Items: make([]CartItemResponse, 0),
		Total: decimal.Zero,
	}
}

// ToOrderResponse maps an order to a response
func ToOrderResponse(order *ordering.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		Status:      order.Status.String(),
		ContactID:   order.ContactID,
		Items:       toItemResponses(order.Items),
		Total:       order.Total(),
		CreatedAt:   order.CreatedAt,
		ConfirmedAt: order.ConfirmedAt,
	}
}
