package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	portsrepo "github.com/wathiqah/wathiqah-backend/internal/core/ports/repositories"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
	"github.com/wathiqah/wathiqah-backend/internal/utils"
)

// ContactService provides business logic for contacts, including the net
// balance computation over a contact's transaction history.
type ContactService struct {
	contactRepo portsrepo.ContactRepositoryFacade
	txnRepo     portsrepo.TransactionReader
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo portsrepo.ContactRepositoryFacade, txnRepo portsrepo.TransactionReader) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		txnRepo:     txnRepo,
	}
}

// CreateContact handles the creation of a new contact owned by userID.
func (s *ContactService) CreateContact(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Contact, error) {
	firstName, lastName := utils.SplitName(req.Name)
	if firstName == "" {
		return nil, fmt.Errorf("%w: contact name cannot be blank", apperrors.ErrValidation)
	}

	now := time.Now()
	contact := domain.Contact{
		ContactID:   uuid.NewString(),
		UserID:      userID,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact in service: %w", err)
	}
	return &contact, nil
}

// GetContact retrieves a contact, enforcing that only its owner may read it.
func (s *ContactService) GetContact(ctx context.Context, contactID, requestingUserID string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact in service: %w", err)
	}
	if contact.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: contact belongs to another user", apperrors.ErrForbidden)
	}
	return contact, nil
}

// ListContacts retrieves all contacts belonging to a user.
func (s *ContactService) ListContacts(ctx context.Context, userID string) ([]domain.Contact, error) {
	contacts, err := s.contactRepo.ListContactsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts in service: %w", err)
	}
	if contacts == nil {
		return []domain.Contact{}, nil
	}
	return contacts, nil
}

// UpdateContact applies a partial update, enforcing ownership.
func (s *ContactService) UpdateContact(ctx context.Context, contactID string, req dto.UpdateContactRequest, requestingUserID string) (*domain.Contact, error) {
	contact, err := s.GetContact(ctx, contactID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		firstName, lastName := utils.SplitName(*req.Name)
		if firstName == "" {
			return nil, fmt.Errorf("%w: contact name cannot be blank", apperrors.ErrValidation)
		}
		contact.FirstName = firstName
		contact.LastName = lastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		contact.PhoneNumber = *req.PhoneNumber
	}
	contact.LastUpdatedAt = time.Now()
	contact.LastUpdatedBy = requestingUserID

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		return nil, fmt.Errorf("failed to update contact in service: %w", err)
	}
	return contact, nil
}

// DeleteContact removes a contact, enforcing ownership.
func (s *ContactService) DeleteContact(ctx context.Context, contactID, requestingUserID string) error {
	if _, err := s.GetContact(ctx, contactID, requestingUserID); err != nil {
		return err
	}
	if err := s.contactRepo.DeleteContact(ctx, contactID); err != nil {
		return fmt.Errorf("failed to delete contact in service: %w", err)
	}
	return nil
}

// GetBalance computes the contact's net standing from its FUNDS transactions.
// GIVEN amounts add to the balance, RECEIVED and COLLECTED subtract; no other
// type contributes. The result carries no currency: amounts are summed as
// recorded, even if the contact's transactions mix currencies. That matches
// the ledger's single-native-currency assumption and is intentionally not
// "fixed" here.
//
// The balance is recomputed from the store on every call; per-contact volumes
// are small and an always-current answer beats caching a stale one.
func (s *ContactService) GetBalance(ctx context.Context, contactID, requestingUserID string) (decimal.Decimal, error) {
	if _, err := s.GetContact(ctx, contactID, requestingUserID); err != nil {
		return decimal.Decimal{}, err
	}

	sums, err := s.txnRepo.SumFundsAmountsByType(ctx, contactID)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to aggregate transactions for balance: %w", err)
	}

	balance := decimal.Zero
	for txnType, sum := range sums {
		switch txnType {
		case domain.Given:
			balance = balance.Add(sum)
		case domain.Received, domain.Collected:
			balance = balance.Sub(sum)
		}
	}
	return balance, nil
}
