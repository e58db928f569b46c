package ordering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
)

// NotificationSender delivers a message to a recipient. Delivery is
// fire-and-forget from the fulfillment engine's perspective.
type NotificationSender interface {
	Send(ctx context.Context, subject, recipient, message string) error
}

// OrderConfirmedHandler emails the customer after a basket has been
// confirmed. It runs post-commit on the event bus; a delivery failure is
// logged and swallowed, never rolled back into the confirmation.
type OrderConfirmedHandler struct {
	userRepo identity.UserRepository
	sender   NotificationSender
	logger   *zap.Logger
}

// NewOrderConfirmedHandler creates a new OrderConfirmedHandler
func NewOrderConfirmedHandler(userRepo identity.UserRepository, sender NotificationSender, logger *zap.Logger) *OrderConfirmedHandler {
	return &OrderConfirmedHandler{
		userRepo: userRepo,
		sender:   sender,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderConfirmedHandler) EventTypes() []string {
	return []string{ordering.EventTypeOrderConfirmed}
}

// Handle sends the order confirmation email
func (h *OrderConfirmedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	confirmed, ok := event.(*ordering.OrderConfirmedEvent)
	if !ok {
		return nil
	}

	user, err := h.userRepo.FindByID(ctx, confirmed.UserID)
	if err != nil {
		h.logger.Warn("order confirmation email skipped, user lookup failed",
			zap.String("order_id", confirmed.OrderID.String()),
			zap.Error(err))
		return nil
	}

	subject := fmt.Sprintf("Order %s confirmed", confirmed.OrderID)
	message := fmt.Sprintf("Your order of %d item(s) for a total of %s has been confirmed.",
		confirmed.ItemCount, confirmed.Total.StringFixed(2))

	if err := h.sender.Send(ctx, subject, user.Email, message); err != nil {
		h.logger.Warn("order confirmation email delivery failed",
			zap.String("order_id", confirmed.OrderID.String()),
			zap.String("recipient", user.Email),
			zap.Error(err))
	}

	return nil
}

var _ shared.EventHandler = (*OrderConfirmedHandler)(nil)
