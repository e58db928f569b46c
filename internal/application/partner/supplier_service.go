package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/partner"
	"github.com/markethub/backend/internal/domain/shared"
)

// SupplierService manages the supplier's own shop record
type SupplierService struct {
	supplierRepo   partner.SupplierRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSupplierService creates a supplier service
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{supplierRepo: supplierRepo, logger: logger}
}

// SetEventPublisher sets the event publisher
func (s *SupplierService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetOwnSupplier returns the supplier record of the calling user
func (s *SupplierService) GetOwnSupplier(ctx context.Context, userID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// SetAcceptingOrders opens or closes the supplier's shop for new orders.
// A closed shop keeps its catalog visible but rejects feed uploads and
// new order lines against its products.
func (s *SupplierService) SetAcceptingOrders(ctx context.Context, userID uuid.UUID, accepting bool) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if accepting {
		supplier.OpenForOrders()
	} else {
		supplier.CloseForOrders()
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range supplier.GetDomainEvents() {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish domain event",
					zap.String("event_type", event.EventType()),
					zap.Error(err))
			}
		}
	}
	supplier.ClearDomainEvents()

	return ToSupplierResponse(supplier), nil
}
