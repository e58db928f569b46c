package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/partner"
	"github.com/markethub/backend/internal/domain/shared"
)

// maxContactsPerUser bounds the address book size
const maxContactsPerUser = 5

// ContactService manages a user's delivery address book. Every operation
// is scoped to the calling user; a contact owned by someone else behaves
// as if it does not exist.
type ContactService struct {
	contactRepo partner.ContactRepository
}

// NewContactService creates a contact service
func NewContactService(contactRepo partner.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// CreateContact adds a delivery contact to the user's address book
func (s *ContactService) CreateContact(ctx context.Context, userID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	existing, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxContactsPerUser {
		return nil, shared.NewDomainError("CONTACT_LIMIT", "Address book is full")
	}

	contact, err := partner.NewContact(userID, req.City, req.Street, req.House, req.Building, req.Flat, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	return ToContactResponse(contact), nil
}

// ListContacts returns the user's delivery contacts
func (s *ContactService) ListContacts(ctx context.Context, userID uuid.UUID) ([]ContactResponse, error) {
	contacts, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = *ToContactResponse(&contacts[i])
	}
	return responses, nil
}

// UpdateContact overwrites a contact the user owns
func (s *ContactService) UpdateContact(ctx context.Context, userID, contactID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	contact, err := s.ownedContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}
	if err := contact.Update(req.City, req.Street, req.House, req.Building, req.Flat, req.Phone); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	return ToContactResponse(contact), nil
}

// DeleteContact removes a contact the user owns
func (s *ContactService) DeleteContact(ctx context.Context, userID, contactID uuid.UUID) error {
	contact, err := s.ownedContact(ctx, userID, contactID)
	if err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, contact.ID)
}

// ownedContact loads a contact and hides other users' contacts as not found
func (s *ContactService) ownedContact(ctx context.Context, userID, contactID uuid.UUID) (*partner.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !contact.BelongsTo(userID) {
		return nil, shared.ErrNotFound
	}
	return contact, nil
}
