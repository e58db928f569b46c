package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence.
// Implementations load and save line items together with the order.
type OrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindBasketByUser finds the user's live basket, or shared.ErrNotFound
	// if the user has none. At most one basket exists per user.
	FindBasketByUser(ctx context.Context, userID uuid.UUID) (*Order, error)

	// FindPlacedByUser finds the user's post-basket orders, newest first
	FindPlacedByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order together with its items. Removed
	// lines are deleted from the store.
	Save(ctx context.Context, order *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
