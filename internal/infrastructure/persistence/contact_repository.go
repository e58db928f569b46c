package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/partner"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Contact, error) {
	var contact partner.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindByUser finds all contacts owned by a user
func (r *GormContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]partner.Contact, error) {
	var contacts []partner.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete deletes a contact
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormContactRepository implements ContactRepository
var _ partner.ContactRepository = (*GormContactRepository)(nil)
