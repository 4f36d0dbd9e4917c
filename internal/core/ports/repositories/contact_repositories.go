package repositories

import (
	"context"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// ContactReader defines read operations for contact data
type ContactReader interface {
	// FindContactByID retrieves a single contact.
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)

	// ListContactsByUser retrieves all of a user's contacts, newest first.
	ListContactsByUser(ctx context.Context, userID string) ([]domain.Contact, error)
}

// ContactWriter defines write operations for contact data
type ContactWriter interface {
	// SaveContact persists a new contact.
	SaveContact(ctx context.Context, contact domain.Contact) error

	// UpdateContact persists changes to an existing contact.
	UpdateContact(ctx context.Context, contact domain.Contact) error

	// DeleteContact removes a contact.
	DeleteContact(ctx context.Context, contactID string) error
}

// ContactRepositoryFacade combines all contact-related repository interfaces
type ContactRepositoryFacade interface {
	ContactReader
	ContactWriter
}
