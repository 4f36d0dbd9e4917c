package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetCategory distinguishes financial transactions from physical item tracking.
type AssetCategory string

const (
	Funds AssetCategory = "FUNDS"
	Item  AssetCategory = "ITEM"
)

// TransactionType captures the direction of a transaction from the ledger
// owner's point of view.
type TransactionType string

const (
	// Given is money or an item handed to the contact (a credit for the owner).
	Given TransactionType = "GIVEN"
	// Received is money or an item taken from the contact (a debt for the owner).
	Received TransactionType = "RECEIVED"
	// Collected is a previously lent amount that has been recovered.
	Collected TransactionType = "COLLECTED"
)

// Transaction is a single ledger entry against a contact. Amount is only set
// for FUNDS entries; ItemName and Quantity are only meaningful for ITEM
// entries.
type Transaction struct {
	TransactionID string              `json:"transactionID"`
	ContactID     string              `json:"contactID"`
	CreatedByID   string              `json:"createdByID"`
	Category      AssetCategory       `json:"category"`
	Type          TransactionType     `json:"type"`
	Amount        decimal.NullDecimal `json:"amount"`
	CurrencyCode  string              `json:"currencyCode"`
	ItemName      string              `json:"itemName,omitempty"`
	Quantity      int                 `json:"quantity,omitempty"`
	Description   string              `json:"description,omitempty"`
	Date          time.Time           `json:"date"`
	Witnesses     []Witness           `json:"witnesses,omitempty"`
	AuditFields
}

// TransactionChangeType labels an audit-trail entry for a transaction.
type TransactionChangeType string

const (
	ChangeUpdate TransactionChangeType = "UPDATE"
	// ChangeUpdatePostAck marks an update made after at least one witness had
	// already acknowledged the transaction.
	ChangeUpdatePostAck TransactionChangeType = "UPDATE_POST_ACK"
)

// TransactionHistory is an append-only audit record of a transaction mutation.
// PreviousState and NewState are stored as JSON documents.
type TransactionHistory struct {
	HistoryID     string                `json:"historyID"`
	TransactionID string                `json:"transactionID"`
	UserID        string                `json:"userID"`
	ChangeType    TransactionChangeType `json:"changeType"`
	PreviousState map[string]any        `json:"previousState"`
	NewState      map[string]any        `json:"newState"`
	CreatedAt     time.Time             `json:"createdAt"`
}
