package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// CreateTransactionRequest defines the structure for creating a new transaction.
// Amount is required for FUNDS, ItemName for ITEM; the service enforces that
// pairing since it depends on Category.
type CreateTransactionRequest struct {
	ContactID      string           `json:"contactID" binding:"required"`
	Category       string           `json:"category" binding:"required,oneof=FUNDS ITEM"`
	Type           string           `json:"type" binding:"required,oneof=GIVEN RECEIVED COLLECTED"`
	Amount         *decimal.Decimal `json:"amount" binding:"omitempty"`
	CurrencyCode   string           `json:"currencyCode" binding:"omitempty,len=3,uppercase,supportedcurrency"`
	ItemName       string           `json:"itemName" binding:"omitempty,max=200"`
	Quantity       int              `json:"quantity" binding:"omitempty,min=1"`
	Description    string           `json:"description" binding:"omitempty,max=2000"`
	Date           time.Time        `json:"date" binding:"required"`
	WitnessUserIDs []string         `json:"witnessUserIDs" binding:"omitempty,dive,required"`
}

// UpdateTransactionRequest defines the structure for partially updating a
// transaction. Nil fields are left unchanged.
type UpdateTransactionRequest struct {
	Category     *string          `json:"category" binding:"omitempty,oneof=FUNDS ITEM"`
	Type         *string          `json:"type" binding:"omitempty,oneof=GIVEN RECEIVED COLLECTED"`
	Amount       *decimal.Decimal `json:"amount" binding:"omitempty"`
	CurrencyCode *string          `json:"currencyCode" binding:"omitempty,len=3,uppercase,supportedcurrency"`
	ItemName     *string          `json:"itemName" binding:"omitempty,max=200"`
	Quantity     *int             `json:"quantity" binding:"omitempty,min=1"`
	Description  *string          `json:"description" binding:"omitempty,max=2000"`
	Date         *time.Time       `json:"date" binding:"omitempty"`
}

// AddWitnessesRequest names users to attach as witnesses to a transaction.
type AddWitnessesRequest struct {
	WitnessUserIDs []string `json:"witnessUserIDs" binding:"required,min=1,dive,required"`
}

// WitnessResponseRequest records a witness's answer to an invite.
type WitnessResponseRequest struct {
	Status string `json:"status" binding:"required,oneof=ACKNOWLEDGED DECLINED"`
}

// WitnessResponse defines the structure for API responses containing witness details.
type WitnessResponse struct {
	WitnessID      string     `json:"witnessID"`
	TransactionID  string     `json:"transactionID"`
	UserID         string     `json:"userID"`
	Status         string     `json:"status"`
	InvitedAt      time.Time  `json:"invitedAt"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
}

// TransactionResponse defines the structure for API responses containing transaction details.
type TransactionResponse struct {
	TransactionID string            `json:"transactionID"`
	ContactID     string            `json:"contactID"`
	Category      string            `json:"category"`
	Type          string            `json:"type"`
	Amount        *decimal.Decimal  `json:"amount,omitempty"`
	CurrencyCode  string            `json:"currencyCode,omitempty"`
	ItemName      string            `json:"itemName,omitempty"`
	Quantity      int               `json:"quantity,omitempty"`
	Description   string            `json:"description,omitempty"`
	Date          time.Time         `json:"date"`
	Witnesses     []WitnessResponse `json:"witnesses,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ToWitnessResponse converts a domain.Witness to WitnessResponse DTO
func ToWitnessResponse(w *domain.Witness) WitnessResponse {
	return WitnessResponse{
		WitnessID:      w.WitnessID,
		TransactionID:  w.TransactionID,
		UserID:         w.UserID,
		Status:         string(w.Status),
		InvitedAt:      w.InvitedAt,
		AcknowledgedAt: w.AcknowledgedAt,
	}
}

// ToListWitnessResponse converts a slice of domain.Witness to response DTOs.
func ToListWitnessResponse(witnesses []domain.Witness) []WitnessResponse {
	responses := make([]WitnessResponse, len(witnesses))
	for i := range witnesses {
		responses[i] = ToWitnessResponse(&witnesses[i])
	}
	return responses
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		ContactID:     txn.ContactID,
		Category:      string(txn.Category),
		Type:          string(txn.Type),
		CurrencyCode:  txn.CurrencyCode,
		ItemName:      txn.ItemName,
		Quantity:      txn.Quantity,
		Description:   txn.Description,
		Date:          txn.Date,
		CreatedAt:     txn.CreatedAt,
	}
	if txn.Amount.Valid {
		amount := txn.Amount.Decimal
		resp.Amount = &amount
	}
	if len(txn.Witnesses) > 0 {
		resp.Witnesses = ToListWitnessResponse(txn.Witnesses)
	}
	return resp
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
