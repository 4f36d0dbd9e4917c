package dto

import (
	"time"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// GrantAccessRequest defines the structure for sharing a ledger view.
type GrantAccessRequest struct {
	GranteeEmail string `json:"granteeEmail" binding:"required,email"`
}

// AcceptAccessRequest carries the invitation token for accepting a grant.
type AcceptAccessRequest struct {
	Token string `json:"token" binding:"required,uuid"`
}

// AccessGrantResponse defines the structure for API responses containing grant details.
type AccessGrantResponse struct {
	GrantID      string    `json:"grantID"`
	OwnerID      string    `json:"ownerID"`
	GranteeEmail string    `json:"granteeEmail"`
	GranteeID    string    `json:"granteeID,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IssuedAccessGrantResponse is returned to the owner when a grant is created
// and is the only place the invitation token appears.
type IssuedAccessGrantResponse struct {
	AccessGrantResponse
	Token string `json:"token"`
}

// SharedDataResponse is the read-only ledger view exposed through a grant.
type SharedDataResponse struct {
	Owner        UserResponse          `json:"owner"`
	Transactions []TransactionResponse `json:"transactions"`
	Promises     []PromiseResponse     `json:"promises"`
}

// ToAccessGrantResponse converts a domain.AccessGrant to AccessGrantResponse DTO
func ToAccessGrantResponse(g *domain.AccessGrant) AccessGrantResponse {
	return AccessGrantResponse{
		GrantID:      g.GrantID,
		OwnerID:      g.OwnerID,
		GranteeEmail: g.GranteeEmail,
		GranteeID:    g.GranteeID,
		Status:       string(g.Status),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.LastUpdatedAt,
	}
}

// ToIssuedAccessGrantResponse converts a freshly created grant, including its token.
func ToIssuedAccessGrantResponse(g *domain.AccessGrant) IssuedAccessGrantResponse {
	return IssuedAccessGrantResponse{
		AccessGrantResponse: ToAccessGrantResponse(g),
		Token:               g.Token,
	}
}

// ToListAccessGrantResponse converts a slice of domain.AccessGrant to response DTOs.
func ToListAccessGrantResponse(grants []domain.AccessGrant) []AccessGrantResponse {
	responses := make([]AccessGrantResponse, len(grants))
	for i := range grants {
		responses[i] = ToAccessGrantResponse(&grants[i])
	}
	return responses
}

// ToSharedDataResponse converts a domain.SharedData view to its DTO.
func ToSharedDataResponse(data *domain.SharedData) SharedDataResponse {
	return SharedDataResponse{
		Owner:        ToUserResponse(&data.Owner),
		Transactions: ToListTransactionResponse(data.Transactions),
		Promises:     ToListPromiseResponse(data.Promises),
	}
}
