package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/partner"
	"github.com/markethub/backend/internal/domain/shared"
)

// conflictAttempts bounds the internal retries on transaction-level
// concurrency conflicts before the failure is surfaced to the caller.
const conflictAttempts = 3

var (
	errCartNotFound = shared.NewDomainError("CART_NOT_FOUND", "No active basket for this user")
	errNoItems      = shared.NewDomainError("NO_ITEMS", "Cannot confirm an empty basket")
)

// insufficientStock builds the stock failure carrying the quantity still
// available so the caller can retry with a smaller amount
func insufficientStock(productName string, productID uuid.UUID, available int) *shared.DomainError {
	message := fmt.Sprintf("Only %d units of %s available", available, productName)
	return shared.NewDomainError("INSUFFICIENT_STOCK", message).WithDetails(map[string]interface{}{
		"product_id": productID,
		"available":  available,
	})
}

// CartService implements the cart half of the fulfillment engine: the
// mutable basket accumulating lines and its atomic conversion into a
// placed order with stock decremented exactly once.
type CartService struct {
	txScope        TransactionScope
	contactRepo    partner.ContactRepository
	eventPublisher shared.EventPublisher
}

// NewCartService creates a new CartService
func NewCartService(txScope TransactionScope, contactRepo partner.ContactRepository) *CartService {
	return &CartService{
		txScope:     txScope,
		contactRepo: contactRepo,
	}
}

// SetEventPublisher sets the event publisher for post-commit side effects
func (s *CartService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AddToCart sets the basket line for a product to the requested quantity,
// creating the basket on first use. The stock check here is advisory only:
// it rejects obviously oversized requests early but carries no transactional
// guarantee. The authoritative check is the guarded decrement at confirmation.
//
// Two concurrent first adds race to create the basket; the loser surfaces a
// concurrency conflict and the retry finds the winner's basket instead.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartResponse, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	var basket *ordering.Order
	var err error
	for attempt := 0; attempt < conflictAttempts; attempt++ {
		basket, err = s.addOnce(ctx, userID, productID, quantity)
		if err == nil || !errors.Is(err, shared.ErrConcurrencyConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, basket)

	response := ToCartResponse(basket)
	return &response, nil
}

// addOnce runs one attempt of the add-to-basket transaction
func (s *CartService) addOnce(ctx context.Context, userID, productID uuid.UUID, quantity int) (*ordering.Order, error) {
	var basket *ordering.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if !product.HasStock(quantity) {
			return insufficientStock(product.Name, product.ID, product.Quantity)
		}

		basket, err = repos.OrderRepo().FindBasketByUser(ctx, userID)
		if errors.Is(err, shared.ErrNotFound) {
			basket, err = ordering.NewBasket(userID)
		}
		if err != nil {
			return err
		}

		if _, err := basket.PutItem(product.ID, product.Name, quantity, product.Price); err != nil {
			return err
		}

		return repos.OrderRepo().Save(ctx, basket)
	})
	if err != nil {
		return nil, err
	}
	return basket, nil
}

// RemoveFromCart deletes the basket line for a product. The basket itself
// survives the removal of its last line.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	var basket *ordering.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		basket, err = repos.OrderRepo().FindBasketByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errCartNotFound
			}
			return err
		}

		if _, err := basket.RemoveItem(productID); err != nil {
			return err
		}

		return repos.OrderRepo().Save(ctx, basket)
	})
	if err != nil {
		return nil, err
	}

	response := ToCartResponse(basket)
	return &response, nil
}

// ShowCart returns the user's basket with its lines and computed total,
// or the explicit empty-cart result when none exists.
func (s *CartService) ShowCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	var response CartResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		basket, err := repos.OrderRepo().FindBasketByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				response = EmptyCartResponse()
				return nil
			}
			return err
		}
		response = ToCartResponse(basket)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ConfirmOrder atomically converts the basket into a placed order.
// Stock is re-validated at commit time with a guarded decrement per line:
// any line exceeding current stock aborts the whole confirmation and rolls
// back the decrements already applied for earlier lines. Serialization
// conflicts against concurrent confirmations are retried a bounded number
// of times before surfacing.
func (s *CartService) ConfirmOrder(ctx context.Context, userID, contactID uuid.UUID) (*OrderResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("VALIDATION_FAILED", "Delivery contact not found")
		}
		return nil, err
	}
	if !contact.BelongsTo(userID) {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Delivery contact does not belong to this user")
	}

	var confirmed *ordering.Order
	for attempt := 0; attempt < conflictAttempts; attempt++ {
		confirmed, err = s.confirmOnce(ctx, userID, contactID)
		if err == nil || !errors.Is(err, shared.ErrConcurrencyConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	// Post-commit: the confirmation notification must never roll back a
	// committed order, so events are published only after the transaction.
	s.publishEvents(ctx, confirmed)

	response := ToOrderResponse(confirmed)
	return &response, nil
}

// confirmOnce runs one attempt of the confirmation transaction
func (s *CartService) confirmOnce(ctx context.Context, userID, contactID uuid.UUID) (*ordering.Order, error) {
	var confirmed *ordering.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		basket, err := repos.OrderRepo().FindBasketByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errCartNotFound
			}
			return err
		}
		if basket.IsEmpty() {
			return errNoItems
		}

		for idx := range basket.Items {
			item := &basket.Items[idx]
			if err := repos.ProductRepo().DecrementQuantity(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) || errors.Is(err, shared.ErrNotFound) {
					available := 0
					if product, lookupErr := repos.ProductRepo().FindByID(ctx, item.ProductID); lookupErr == nil {
						available = product.Quantity
					}
					return insufficientStock(item.ProductName, item.ProductID, available)
				}
				return err
			}
		}

		if err := basket.Confirm(contactID); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, basket); err != nil {
			return err
		}

		confirmed = basket
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// publishEvents publishes and clears an order's pending domain events
func (s *CartService) publishEvents(ctx context.Context, order *ordering.Order) {
	if s.eventPublisher == nil || order == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		// Event handling is async; a publish failure must not fail the operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}
