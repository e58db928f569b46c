package identity

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserRegistered = "UserRegistered"
)

// UserRegisteredEvent is published when a new user account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   UserRole  `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
		Role:            user.Role,
	}
}
