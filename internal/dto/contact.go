package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// CreateContactRequest defines the structure for creating a new contact.
// Name is split into first and last name on the way in.
type CreateContactRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,max=32"`
}

// UpdateContactRequest defines the structure for partially updating a contact.
// Nil fields are left unchanged.
type UpdateContactRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email       *string `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,max=32"`
}

// ContactResponse defines the structure for API responses containing contact details.
type ContactResponse struct {
	ContactID   string    `json:"contactID"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BalanceResponse carries a contact's computed net balance. The sign follows
// the ledger convention: positive means the contact owes the account holder.
type BalanceResponse struct {
	ContactID string          `json:"contactID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToContactResponse converts a domain.Contact to ContactResponse DTO
func ToContactResponse(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:   contact.ContactID,
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		Email:       contact.Email,
		PhoneNumber: contact.PhoneNumber,
		CreatedAt:   contact.CreatedAt,
	}
}

// ToListContactResponse converts a slice of domain.Contact to response DTOs.
func ToListContactResponse(contacts []domain.Contact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses
}
