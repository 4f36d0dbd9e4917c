package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	portssvc "github.com/wathiqah/wathiqah-backend/internal/core/ports/services"
	"github.com/wathiqah/wathiqah-backend/internal/core/services"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
)

// --- Mock TransactionRepository (full facade) ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByCreator(ctx context.Context, createdByID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, createdByID)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) SumFundsAmountsByType(ctx context.Context, contactID string) (map[domain.TransactionType]decimal.Decimal, error) {
	args := m.Called(ctx, contactID)
	var sums map[domain.TransactionType]decimal.Decimal
	if args.Get(0) != nil {
		sums = args.Get(0).(map[domain.TransactionType]decimal.Decimal)
	}
	return sums, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) AppendTransactionHistory(ctx context.Context, tx pgx.Tx, history domain.TransactionHistory) error {
	args := m.Called(ctx, tx, history)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock WitnessRepository ---
type MockWitnessRepository struct {
	mock.Mock
}

func (m *MockWitnessRepository) FindWitnessByID(ctx context.Context, witnessID string) (*domain.Witness, error) {
	args := m.Called(ctx, witnessID)
	var witness *domain.Witness
	if args.Get(0) != nil {
		witness = args.Get(0).(*domain.Witness)
	}
	return witness, args.Error(1)
}

func (m *MockWitnessRepository) ListWitnessesByTransaction(ctx context.Context, transactionID string) ([]domain.Witness, error) {
	args := m.Called(ctx, transactionID)
	var witnesses []domain.Witness
	if args.Get(0) != nil {
		witnesses = args.Get(0).([]domain.Witness)
	}
	return witnesses, args.Error(1)
}

func (m *MockWitnessRepository) ListWitnessesByUser(ctx context.Context, userID string, status domain.WitnessStatus) ([]domain.Witness, error) {
	args := m.Called(ctx, userID, status)
	var witnesses []domain.Witness
	if args.Get(0) != nil {
		witnesses = args.Get(0).([]domain.Witness)
	}
	return witnesses, args.Error(1)
}

func (m *MockWitnessRepository) SaveWitnesses(ctx context.Context, tx pgx.Tx, witnesses []domain.Witness) error {
	args := m.Called(ctx, tx, witnesses)
	return args.Error(0)
}

func (m *MockWitnessRepository) UpdateWitness(ctx context.Context, tx pgx.Tx, witness domain.Witness) error {
	args := m.Called(ctx, tx, witness)
	return args.Error(0)
}

func (m *MockWitnessRepository) ResetWitnessesToModified(ctx context.Context, tx pgx.Tx, transactionID string) error {
	args := m.Called(ctx, tx, transactionID)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockWitnessRepo *MockWitnessRepository
	mockContactRepo *MockContactRepository
	service         portssvc.TransactionSvcFacade
	userID          string
	contactID       string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockWitnessRepo = new(MockWitnessRepository)
	suite.mockContactRepo = new(MockContactRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockWitnessRepo, suite.mockContactRepo)
	suite.userID = uuid.NewString()
	suite.contactID = uuid.NewString()
}

// expectDBTransaction wires the begin/commit pair plus the deferred rollback
// that runs after a successful commit.
func (suite *TransactionServiceTestSuite) expectDBTransaction(ctx context.Context) {
	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, nil).Return(nil).Maybe()
}

func (suite *TransactionServiceTestSuite) ownedContact() *domain.Contact {
	return &domain.Contact{ContactID: suite.contactID, UserID: suite.userID}
}

// --- CreateTransaction Tests ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FundsWithWitnesses() {
	ctx := context.Background()
	amount := decimal.RequireFromString("250.75")
	witnessA := uuid.NewString()
	witnessB := uuid.NewString()
	req := dto.CreateTransactionRequest{
		ContactID:      suite.contactID,
		Category:       "FUNDS",
		Type:           "GIVEN",
		Amount:         &amount,
		CurrencyCode:   "NGN",
		Date:           time.Now(),
		WitnessUserIDs: []string{witnessA, witnessB, witnessA}, // duplicate must collapse
	}

	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(suite.ownedContact(), nil).Once()
	suite.expectDBTransaction(ctx)
	suite.mockTxnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ContactID == suite.contactID &&
			txn.Category == domain.Funds &&
			txn.Type == domain.Given &&
			txn.Amount.Valid && txn.Amount.Decimal.Equal(amount) &&
			txn.CreatedByID == suite.userID
	})).Return(nil).Once()
	suite.mockWitnessRepo.On("SaveWitnesses", ctx, nil, mock.MatchedBy(func(witnesses []domain.Witness) bool {
		if len(witnesses) != 2 {
			return false
		}
		for _, w := range witnesses {
			if w.Status != domain.WitnessPending {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Len(txn.Witnesses, 2)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockWitnessRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FundsRequiresAmount() {
	req := dto.CreateTransactionRequest{
		ContactID: suite.contactID,
		Category:  "FUNDS",
		Type:      "GIVEN",
		Date:      time.Now(),
	}

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ItemRequiresName() {
	req := dto.CreateTransactionRequest{
		ContactID: suite.contactID,
		Category:  "ITEM",
		Type:      "GIVEN",
		Date:      time.Now(),
	}

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ForeignContactForbidden() {
	ctx := context.Background()
	amount := decimal.NewFromInt(10)
	req := dto.CreateTransactionRequest{
		ContactID: suite.contactID,
		Category:  "FUNDS",
		Type:      "RECEIVED",
		Amount:    &amount,
		Date:      time.Now(),
	}
	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(&domain.Contact{
		ContactID: suite.contactID,
		UserID:    uuid.NewString(),
	}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- UpdateTransaction Tests ---

func (suite *TransactionServiceTestSuite) existingTransaction(witnesses ...domain.Witness) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		ContactID:     suite.contactID,
		CreatedByID:   suite.userID,
		Category:      domain.Funds,
		Type:          domain.Given,
		Amount:        decimal.NewNullDecimal(decimal.NewFromInt(100)),
		CurrencyCode:  "NGN",
		Date:          time.Now().Add(-24 * time.Hour),
		Witnesses:     witnesses,
	}
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RecordsHistory() {
	ctx := context.Background()
	txn := suite.existingTransaction()
	newDescription := "repaid in part"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.expectDBTransaction(ctx)
	suite.mockTxnRepo.On("UpdateTransaction", ctx, nil, mock.MatchedBy(func(updated domain.Transaction) bool {
		return updated.Description == newDescription && updated.LastUpdatedBy == suite.userID
	})).Return(nil).Once()
	suite.mockTxnRepo.On("AppendTransactionHistory", ctx, nil, mock.MatchedBy(func(h domain.TransactionHistory) bool {
		return h.ChangeType == domain.ChangeUpdate && h.NewState["description"] == newDescription
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, txn.TransactionID, dto.UpdateTransactionRequest{
		Description: &newDescription,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newDescription, updated.Description)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockWitnessRepo.AssertNotCalled(suite.T(), "ResetWitnessesToModified", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_PostAckResetsWitnesses() {
	ctx := context.Background()
	ackTime := time.Now().Add(-time.Hour)
	txn := suite.existingTransaction(
		domain.Witness{WitnessID: uuid.NewString(), UserID: uuid.NewString(), Status: domain.WitnessAcknowledged, AcknowledgedAt: &ackTime},
		domain.Witness{WitnessID: uuid.NewString(), UserID: uuid.NewString(), Status: domain.WitnessPending},
	)
	newAmount := decimal.NewFromInt(150)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.expectDBTransaction(ctx)
	suite.mockWitnessRepo.On("ResetWitnessesToModified", ctx, nil, txn.TransactionID).Return(nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("AppendTransactionHistory", ctx, nil, mock.MatchedBy(func(h domain.TransactionHistory) bool {
		return h.ChangeType == domain.ChangeUpdatePostAck
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, txn.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	}, suite.userID)

	suite.Require().NoError(err)
	for _, w := range updated.Witnesses {
		suite.Equal(domain.WitnessModified, w.Status)
		suite.Nil(w.AcknowledgedAt)
	}
	suite.mockWitnessRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ForeignTransactionForbidden() {
	ctx := context.Background()
	txn := suite.existingTransaction()
	txn.CreatedByID = uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txn.TransactionID, dto.UpdateTransactionRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Witness Response Tests ---

func (suite *TransactionServiceTestSuite) TestRespondToWitnessRequest_Acknowledge() {
	ctx := context.Background()
	witnessID := uuid.NewString()
	transactionID := uuid.NewString()
	suite.mockWitnessRepo.On("FindWitnessByID", ctx, witnessID).Return(&domain.Witness{
		WitnessID:     witnessID,
		TransactionID: transactionID,
		UserID:        suite.userID,
		Status:        domain.WitnessPending,
	}, nil).Once()
	suite.expectDBTransaction(ctx)
	suite.mockWitnessRepo.On("UpdateWitness", ctx, nil, mock.MatchedBy(func(w domain.Witness) bool {
		return w.Status == domain.WitnessAcknowledged && w.AcknowledgedAt != nil
	})).Return(nil).Once()
	suite.mockTxnRepo.On("AppendTransactionHistory", ctx, nil, mock.MatchedBy(func(h domain.TransactionHistory) bool {
		return h.TransactionID == transactionID &&
			h.ChangeType == domain.TransactionChangeType("WITNESS_ACKNOWLEDGED") &&
			h.PreviousState["witnessStatus"] == "PENDING"
	})).Return(nil).Once()

	witness, err := suite.service.RespondToWitnessRequest(ctx, witnessID, domain.WitnessAcknowledged, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.WitnessAcknowledged, witness.Status)
	suite.NotNil(witness.AcknowledgedAt)
	suite.mockWitnessRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRespondToWitnessRequest_OnlyNamedWitness() {
	ctx := context.Background()
	witnessID := uuid.NewString()
	suite.mockWitnessRepo.On("FindWitnessByID", ctx, witnessID).Return(&domain.Witness{
		WitnessID: witnessID,
		UserID:    uuid.NewString(),
		Status:    domain.WitnessPending,
	}, nil).Once()

	_, err := suite.service.RespondToWitnessRequest(ctx, witnessID, domain.WitnessDeclined, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWitnessRepo.AssertNotCalled(suite.T(), "UpdateWitness", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRespondToWitnessRequest_InvalidStatus() {
	_, err := suite.service.RespondToWitnessRequest(context.Background(), uuid.NewString(), domain.WitnessModified, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ListWitnessRequests Tests ---

func (suite *TransactionServiceTestSuite) TestListWitnessRequests_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockWitnessRepo.On("ListWitnessesByUser", ctx, suite.userID, domain.WitnessPending).Return(nil, nil).Once()

	witnesses, err := suite.service.ListWitnessRequests(ctx, suite.userID, domain.WitnessPending)

	suite.Require().NoError(err)
	suite.NotNil(witnesses)
	suite.Empty(witnesses)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
