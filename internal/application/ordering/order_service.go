package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
)

// OrderService handles the read model and post-confirmation lifecycle of
// placed orders. Baskets are out of its scope; those belong to CartService.
type OrderService struct {
	orderRepo      ordering.OrderRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// SetEventPublisher sets the event publisher for lifecycle notifications
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ListOrders returns the user's placed orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindPlacedByUser(ctx, userID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToOrderResponse(&orders[idx]))
	}
	return responses, nil
}

// GetOrder returns one of the user's orders by ID. Orders of other users
// surface as not found.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, shared.ErrNotFound
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// StartProcessing moves a confirmed order into fulfillment
func (s *OrderService) StartProcessing(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, (*ordering.Order).StartProcessing)
}

// Ship marks an order as handed to delivery
func (s *OrderService) Ship(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, (*ordering.Order).Ship)
}

// Complete marks an order as delivered
func (s *OrderService) Complete(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, (*ordering.Order).Complete)
}

// Cancel cancels an order
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, (*ordering.Order).Cancel)
}

// transition loads an order, applies a lifecycle transition and saves it
func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, apply func(*ordering.Order) error) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := apply(order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range order.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		order.ClearDomainEvents()
	}

	response := ToOrderResponse(order)
	return &response, nil
}
