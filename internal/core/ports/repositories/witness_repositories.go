package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// WitnessReader defines read operations for witness data
type WitnessReader interface {
	// FindWitnessByID retrieves a single witness record.
	FindWitnessByID(ctx context.Context, witnessID string) (*domain.Witness, error)

	// ListWitnessesByTransaction retrieves all witnesses on a transaction.
	ListWitnessesByTransaction(ctx context.Context, transactionID string) ([]domain.Witness, error)

	// ListWitnessesByUser retrieves a user's witness requests, optionally
	// filtered by status (empty status means no filter), newest invite first.
	ListWitnessesByUser(ctx context.Context, userID string, status domain.WitnessStatus) ([]domain.Witness, error)
}

// WitnessWriter defines write operations for witness data
type WitnessWriter interface {
	// SaveWitnesses persists witness records, skipping duplicates on
	// (transactionID, userID). When tx is non-nil the inserts join that
	// database transaction.
	SaveWitnesses(ctx context.Context, tx pgx.Tx, witnesses []domain.Witness) error

	// UpdateWitness persists a status change on one witness record.
	UpdateWitness(ctx context.Context, tx pgx.Tx, witness domain.Witness) error

	// ResetWitnessesToModified flips every witness on the transaction to
	// MODIFIED and clears their acknowledgement timestamps.
	ResetWitnessesToModified(ctx context.Context, tx pgx.Tx, transactionID string) error
}

// WitnessRepositoryFacade combines all witness-related repository interfaces
type WitnessRepositoryFacade interface {
	WitnessReader
	WitnessWriter
}
