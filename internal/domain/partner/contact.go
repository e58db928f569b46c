package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Contact is a delivery address owned by a user. Order confirmation
// requires a contact and verifies it belongs to the confirming user.
type Contact struct {
	shared.BaseEntity
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	City     string    `gorm:"type:varchar(100);not null"`
	Street   string    `gorm:"type:varchar(200);not null"`
	House    string    `gorm:"type:varchar(20)"`
	Building string    `gorm:"type:varchar(20)"`
	Flat     string    `gorm:"type:varchar(20)"`
	Phone    string    `gorm:"type:varchar(30);not null"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new delivery contact for a user
func NewContact(userID uuid.UUID, city, street, house, building, flat, phone string) (*Contact, error) {
	if city == "" {
		return nil, shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if street == "" {
		return nil, shared.NewDomainError("INVALID_STREET", "Street cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}

	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		City:       city,
		Street:     street,
		House:      house,
		Building:   building,
		Flat:       flat,
		Phone:      phone,
	}, nil
}

// Update overwrites the contact's address fields
func (c *Contact) Update(city, street, house, building, flat, phone string) error {
	if city == "" {
		return shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if street == "" {
		return shared.NewDomainError("INVALID_STREET", "Street cannot be empty")
	}
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}

	c.City = city
	c.Street = street
	c.House = house
	c.Building = building
	c.Flat = flat
	c.Phone = phone
	c.UpdatedAt = time.Now()

	return nil
}

// BelongsTo returns true if the contact is owned by the given user
func (c *Contact) BelongsTo(userID uuid.UUID) bool {
	return c.UserID == userID
}
