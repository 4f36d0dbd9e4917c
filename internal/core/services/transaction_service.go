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
)

// TransactionService provides business logic for ledger transactions and the
// witnesses attached to them.
type TransactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	witnessRepo portsrepo.WitnessRepositoryFacade
	contactRepo portsrepo.ContactReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	witnessRepo portsrepo.WitnessRepositoryFacade,
	contactRepo portsrepo.ContactReader,
) *TransactionService {
	return &TransactionService{
		txnRepo:     txnRepo,
		witnessRepo: witnessRepo,
		contactRepo: contactRepo,
	}
}

// CreateTransaction persists a new transaction and its named witnesses inside
// one database transaction, so either everything is recorded or nothing is.
func (s *TransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	category := domain.AssetCategory(req.Category)

	if category == domain.Funds && req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required for financial transactions", apperrors.ErrValidation)
	}
	if category == domain.Item && req.ItemName == "" {
		return nil, fmt.Errorf("%w: item name is required for physical item tracking", apperrors.ErrValidation)
	}

	contact, err := s.contactRepo.FindContactByID(ctx, req.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate contact: %w", err)
	}
	if contact.UserID != userID {
		return nil, fmt.Errorf("%w: contact belongs to another user", apperrors.ErrForbidden)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ContactID:     req.ContactID,
		CreatedByID:   userID,
		Category:      category,
		Type:          domain.TransactionType(req.Type),
		CurrencyCode:  req.CurrencyCode,
		ItemName:      req.ItemName,
		Description:   req.Description,
		Date:          req.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.Amount != nil {
		txn.Amount = decimal.NewNullDecimal(*req.Amount)
	}
	// Quantity only means something for item tracking.
	if category == domain.Item {
		txn.Quantity = req.Quantity
	}

	dbTx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, dbTx) }()

	if err := s.txnRepo.SaveTransaction(ctx, dbTx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction in service: %w", err)
	}

	witnesses := buildWitnesses(txn.TransactionID, req.WitnessUserIDs, now)
	if len(witnesses) > 0 {
		if err := s.witnessRepo.SaveWitnesses(ctx, dbTx, witnesses); err != nil {
			return nil, fmt.Errorf("failed to attach witnesses: %w", err)
		}
	}

	if err := s.txnRepo.Commit(ctx, dbTx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	txn.Witnesses = witnesses
	return &txn, nil
}

// GetTransaction retrieves a transaction with witnesses, enforcing that only
// its creator may read it.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction in service: %w", err)
	}
	if txn.CreatedByID != requestingUserID {
		return nil, fmt.Errorf("%w: transaction belongs to another user", apperrors.ErrForbidden)
	}
	return txn, nil
}

// ListTransactions retrieves all transactions created by a user, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactionsByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// UpdateTransaction applies a partial update and records an audit-trail entry.
// If any witness had already acknowledged the transaction, every witness is
// reset to MODIFIED and the change is tagged UPDATE_POST_ACK: an edit voids
// prior acknowledgements.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, transactionID, requestingUserID)
	if err != nil {
		return nil, err
	}

	previousState := transactionSnapshot(txn)
	changes := map[string]any{}

	if req.Category != nil && domain.AssetCategory(*req.Category) != txn.Category {
		txn.Category = domain.AssetCategory(*req.Category)
		changes["category"] = *req.Category
	}
	if req.Type != nil && domain.TransactionType(*req.Type) != txn.Type {
		txn.Type = domain.TransactionType(*req.Type)
		changes["type"] = *req.Type
	}
	if req.Amount != nil && (!txn.Amount.Valid || !req.Amount.Equal(txn.Amount.Decimal)) {
		txn.Amount = decimal.NewNullDecimal(*req.Amount)
		changes["amount"] = req.Amount.String()
	}
	if req.CurrencyCode != nil && *req.CurrencyCode != txn.CurrencyCode {
		txn.CurrencyCode = *req.CurrencyCode
		changes["currencyCode"] = *req.CurrencyCode
	}
	if req.ItemName != nil && *req.ItemName != txn.ItemName {
		txn.ItemName = *req.ItemName
		changes["itemName"] = *req.ItemName
	}
	if req.Quantity != nil && *req.Quantity != txn.Quantity {
		txn.Quantity = *req.Quantity
		changes["quantity"] = *req.Quantity
	}
	if req.Description != nil && *req.Description != txn.Description {
		txn.Description = *req.Description
		changes["description"] = *req.Description
	}
	if req.Date != nil && !req.Date.Equal(txn.Date) {
		txn.Date = *req.Date
		changes["date"] = req.Date.Format(time.RFC3339)
	}

	if txn.Category == domain.Funds && !txn.Amount.Valid {
		return nil, fmt.Errorf("%w: amount is required for financial transactions", apperrors.ErrValidation)
	}

	hasAcknowledged := false
	for _, w := range txn.Witnesses {
		if w.Status == domain.WitnessAcknowledged {
			hasAcknowledged = true
			break
		}
	}

	changeType := domain.ChangeUpdate
	if hasAcknowledged {
		changeType = domain.ChangeUpdatePostAck
	}

	now := time.Now()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = requestingUserID

	dbTx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, dbTx) }()

	if hasAcknowledged {
		if err := s.witnessRepo.ResetWitnessesToModified(ctx, dbTx, transactionID); err != nil {
			return nil, fmt.Errorf("failed to reset witnesses: %w", err)
		}
	}

	if err := s.txnRepo.UpdateTransaction(ctx, dbTx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction in service: %w", err)
	}

	history := domain.TransactionHistory{
		HistoryID:     uuid.NewString(),
		TransactionID: transactionID,
		UserID:        requestingUserID,
		ChangeType:    changeType,
		PreviousState: previousState,
		NewState:      changes,
		CreatedAt:     now,
	}
	if err := s.txnRepo.AppendTransactionHistory(ctx, dbTx, history); err != nil {
		return nil, fmt.Errorf("failed to record transaction history: %w", err)
	}

	if err := s.txnRepo.Commit(ctx, dbTx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if hasAcknowledged {
		for i := range txn.Witnesses {
			txn.Witnesses[i].Status = domain.WitnessModified
			txn.Witnesses[i].AcknowledgedAt = nil
		}
	}
	return txn, nil
}

// AddWitnesses attaches witnesses to an existing transaction. Users who are
// already witnesses are skipped silently.
func (s *TransactionService) AddWitnesses(ctx context.Context, transactionID string, req dto.AddWitnessesRequest, requestingUserID string) (*domain.Transaction, error) {
	if _, err := s.GetTransaction(ctx, transactionID, requestingUserID); err != nil {
		return nil, err
	}

	witnesses := buildWitnesses(transactionID, req.WitnessUserIDs, time.Now())
	if err := s.witnessRepo.SaveWitnesses(ctx, nil, witnesses); err != nil {
		return nil, fmt.Errorf("failed to attach witnesses: %w", err)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload transaction: %w", err)
	}
	return txn, nil
}

// RespondToWitnessRequest records a witness's acknowledgement or decline.
// Only the named witness may respond. The response and a snapshot of what was
// witnessed are written to the transaction's audit trail.
func (s *TransactionService) RespondToWitnessRequest(ctx context.Context, witnessID string, status domain.WitnessStatus, requestingUserID string) (*domain.Witness, error) {
	if status != domain.WitnessAcknowledged && status != domain.WitnessDeclined {
		return nil, fmt.Errorf("%w: witness response must be ACKNOWLEDGED or DECLINED", apperrors.ErrValidation)
	}

	witness, err := s.witnessRepo.FindWitnessByID(ctx, witnessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get witness record in service: %w", err)
	}
	if witness.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: witness record belongs to another user", apperrors.ErrForbidden)
	}

	previousStatus := witness.Status
	now := time.Now()
	witness.Status = status
	if status == domain.WitnessAcknowledged {
		witness.AcknowledgedAt = &now
	} else {
		witness.AcknowledgedAt = nil
	}

	dbTx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, dbTx) }()

	if err := s.witnessRepo.UpdateWitness(ctx, dbTx, *witness); err != nil {
		return nil, fmt.Errorf("failed to update witness in service: %w", err)
	}

	history := domain.TransactionHistory{
		HistoryID:     uuid.NewString(),
		TransactionID: witness.TransactionID,
		UserID:        requestingUserID,
		ChangeType:    domain.TransactionChangeType("WITNESS_" + string(status)),
		PreviousState: map[string]any{"witnessStatus": string(previousStatus)},
		NewState:      map[string]any{"witnessStatus": string(status)},
		CreatedAt:     now,
	}
	if err := s.txnRepo.AppendTransactionHistory(ctx, dbTx, history); err != nil {
		return nil, fmt.Errorf("failed to record witness response: %w", err)
	}

	if err := s.txnRepo.Commit(ctx, dbTx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return witness, nil
}

// ListWitnessRequests retrieves a user's witness requests, optionally filtered
// by status.
func (s *TransactionService) ListWitnessRequests(ctx context.Context, userID string, status domain.WitnessStatus) ([]domain.Witness, error) {
	witnesses, err := s.witnessRepo.ListWitnessesByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list witness requests in service: %w", err)
	}
	if witnesses == nil {
		return []domain.Witness{}, nil
	}
	return witnesses, nil
}

func buildWitnesses(transactionID string, userIDs []string, invitedAt time.Time) []domain.Witness {
	witnesses := make([]domain.Witness, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		witnesses = append(witnesses, domain.Witness{
			WitnessID:     uuid.NewString(),
			TransactionID: transactionID,
			UserID:        userID,
			Status:        domain.WitnessPending,
			InvitedAt:     invitedAt,
		})
	}
	return witnesses
}

// transactionSnapshot captures the mutable fields of a transaction for the
// audit trail.
func transactionSnapshot(txn *domain.Transaction) map[string]any {
	snapshot := map[string]any{
		"category":    string(txn.Category),
		"type":        string(txn.Type),
		"itemName":    txn.ItemName,
		"quantity":    txn.Quantity,
		"description": txn.Description,
		"date":        txn.Date.Format(time.RFC3339),
		"contactID":   txn.ContactID,
	}
	if txn.Amount.Valid {
		snapshot["amount"] = txn.Amount.Decimal.String()
	}
	return snapshot
}
