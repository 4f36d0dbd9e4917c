package services

import (
	"context"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransaction retrieves a transaction with witnesses, enforcing that
	// only its creator may read it.
	GetTransaction(ctx context.Context, transactionID, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves all transactions created by a user.
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction and any named witnesses in
	// a single database transaction.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction applies a partial update and records an audit-trail
	// entry. If any witness had acknowledged the transaction, all witnesses
	// are reset to MODIFIED and the change is tagged UPDATE_POST_ACK.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// AddWitnesses attaches witnesses to an existing transaction, skipping
	// users who are already witnesses.
	AddWitnesses(ctx context.Context, transactionID string, req dto.AddWitnessesRequest, requestingUserID string) (*domain.Transaction, error)
}

// WitnessSvc defines witness response operations
type WitnessSvc interface {
	// RespondToWitnessRequest records a witness's acknowledgement or decline.
	// Only the named witness may respond; the response is written alongside a
	// transaction-history entry.
	RespondToWitnessRequest(ctx context.Context, witnessID string, status domain.WitnessStatus, requestingUserID string) (*domain.Witness, error)

	// ListWitnessRequests retrieves a user's witness requests, optionally
	// filtered by status.
	ListWitnessRequests(ctx context.Context, userID string, status domain.WitnessStatus) ([]domain.Witness, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	WitnessSvc
}
