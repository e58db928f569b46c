package ingest

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

const (
	// EventTypeIngestCompleted is published after a feed has been applied
	EventTypeIngestCompleted = "IngestCompleted"
)

// IngestCompletedEvent reports the outcome of a processed supplier feed
type IngestCompletedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID    `json:"supplier_id"`
	Report     IngestReport `json:"report"`
}

// NewIngestCompletedEvent creates an ingest completed event
func NewIngestCompletedEvent(supplierID uuid.UUID, report IngestReport) *IngestCompletedEvent {
	return &IngestCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIngestCompleted, "Supplier", supplierID),
		SupplierID:      supplierID,
		Report:          report,
	}
}
