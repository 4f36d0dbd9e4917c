package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
)

// ContactReaderSvc defines read operations for contact data
type ContactReaderSvc interface {
	// GetContact retrieves a contact, enforcing ownership.
	GetContact(ctx context.Context, contactID, requestingUserID string) (*domain.Contact, error)

	// ListContacts retrieves all contacts belonging to a user.
	ListContacts(ctx context.Context, userID string) ([]domain.Contact, error)

	// GetBalance computes the contact's net standing from its FUNDS
	// transactions: GIVEN adds, RECEIVED and COLLECTED subtract. The result is
	// a plain signed decimal with no currency attached; positive means the
	// contact owes the account holder.
	GetBalance(ctx context.Context, contactID, requestingUserID string) (decimal.Decimal, error)
}

// ContactWriterSvc defines write operations for contact data
type ContactWriterSvc interface {
	// CreateContact persists a new contact owned by userID.
	CreateContact(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Contact, error)

	// UpdateContact applies a partial update, enforcing ownership.
	UpdateContact(ctx context.Context, contactID string, req dto.UpdateContactRequest, requestingUserID string) (*domain.Contact, error)

	// DeleteContact removes a contact, enforcing ownership.
	DeleteContact(ctx context.Context, contactID, requestingUserID string) error
}

// ContactSvcFacade combines all contact-related service interfaces
type ContactSvcFacade interface {
	ContactReaderSvc
	ContactWriterSvc
}
