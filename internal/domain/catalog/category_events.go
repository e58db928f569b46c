package catalog

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCategory = "Category"

// Event type constants
const (
	EventTypeCategoryCreated = "CategoryCreated"
)

// CategoryCreatedEvent is published when a new category is created
type CategoryCreatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
}

// NewCategoryCreatedEvent creates a new CategoryCreatedEvent
func NewCategoryCreatedEvent(category *Category) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryCreated, AggregateTypeCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
	}
}
