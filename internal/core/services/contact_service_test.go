package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	portssvc "github.com/wathiqah/wathiqah-backend/internal/core/ports/services"
	"github.com/wathiqah/wathiqah-backend/internal/core/services"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
)

// --- Mock ContactRepository ---
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	var contact *domain.Contact
	if args.Get(0) != nil {
		contact = args.Get(0).(*domain.Contact)
	}
	return contact, args.Error(1)
}

func (m *MockContactRepository) ListContactsByUser(ctx context.Context, userID string) ([]domain.Contact, error) {
	args := m.Called(ctx, userID)
	var contacts []domain.Contact
	if args.Get(0) != nil {
		contacts = args.Get(0).([]domain.Contact)
	}
	return contacts, args.Error(1)
}

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) DeleteContact(ctx context.Context, contactID string) error {
	args := m.Called(ctx, contactID)
	return args.Error(0)
}

// --- Mock TransactionReader ---
type MockTransactionReader struct {
	mock.Mock
}

func (m *MockTransactionReader) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionReader) ListTransactionsByCreator(ctx context.Context, createdByID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, createdByID)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionReader) SumFundsAmountsByType(ctx context.Context, contactID string) (map[domain.TransactionType]decimal.Decimal, error) {
	args := m.Called(ctx, contactID)
	var sums map[domain.TransactionType]decimal.Decimal
	if args.Get(0) != nil {
		sums = args.Get(0).(map[domain.TransactionType]decimal.Decimal)
	}
	return sums, args.Error(1)
}

// --- Test Suite ---
type ContactServiceTestSuite struct {
	suite.Suite
	mockContactRepo *MockContactRepository
	mockTxnReader   *MockTransactionReader
	service         portssvc.ContactSvcFacade
	userID          string
	contactID       string
}

func (suite *ContactServiceTestSuite) SetupTest() {
	suite.mockContactRepo = new(MockContactRepository)
	suite.mockTxnReader = new(MockTransactionReader)
	suite.service = services.NewContactService(suite.mockContactRepo, suite.mockTxnReader)
	suite.userID = uuid.NewString()
	suite.contactID = uuid.NewString()
}

func (suite *ContactServiceTestSuite) ownedContact() *domain.Contact {
	return &domain.Contact{
		ContactID: suite.contactID,
		UserID:    suite.userID,
		FirstName: "Amina",
		LastName:  "Bello",
	}
}

// --- CreateContact Tests ---

func (suite *ContactServiceTestSuite) TestCreateContact_Success() {
	ctx := context.Background()
	req := dto.CreateContactRequest{Name: "Amina Bello", Email: "amina@example.com"}

	suite.mockContactRepo.On("SaveContact", ctx, mock.MatchedBy(func(c domain.Contact) bool {
		return c.UserID == suite.userID && c.FirstName == "Amina" && c.LastName == "Bello" && c.CreatedBy == suite.userID
	})).Return(nil).Once()

	contact, err := suite.service.CreateContact(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(contact)
	suite.NotEmpty(contact.ContactID)
	suite.Equal("Amina", contact.FirstName)
	suite.Equal("Bello", contact.LastName)
	suite.mockContactRepo.AssertExpectations(suite.T())
}

func (suite *ContactServiceTestSuite) TestCreateContact_BlankName() {
	_, err := suite.service.CreateContact(context.Background(), dto.CreateContactRequest{Name: "   "}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockContactRepo.AssertNotCalled(suite.T(), "SaveContact", mock.Anything, mock.Anything)
}

// --- GetContact Tests ---

func (suite *ContactServiceTestSuite) TestGetContact_ForbiddenForOtherUser() {
	ctx := context.Background()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(suite.ownedContact(), nil).Once()

	_, err := suite.service.GetContact(ctx, suite.contactID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ContactServiceTestSuite) TestGetContact_NotFound() {
	ctx := context.Background()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetContact(ctx, suite.contactID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- GetBalance Tests ---

func (suite *ContactServiceTestSuite) TestGetBalance_GivenMinusReceivedMinusCollected() {
	ctx := context.Background()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(suite.ownedContact(), nil).Once()
	suite.mockTxnReader.On("SumFundsAmountsByType", ctx, suite.contactID).Return(map[domain.TransactionType]decimal.Decimal{
		domain.Given:     decimal.NewFromInt(500),
		domain.Received:  decimal.NewFromInt(200),
		domain.Collected: decimal.NewFromInt(100),
	}, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.contactID, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(200)), "500 - 200 - 100 should be 200, got %s", balance)
}

func (suite *ContactServiceTestSuite) TestGetBalance_NoTransactionsIsZero() {
	ctx := context.Background()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(suite.ownedContact(), nil).Once()
	suite.mockTxnReader.On("SumFundsAmountsByType", ctx, suite.contactID).Return(map[domain.TransactionType]decimal.Decimal{}, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.contactID, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.IsZero())
}

func (suite *ContactServiceTestSuite) TestGetBalance_CanGoNegative() {
	ctx := context.Background()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(suite.ownedContact(), nil).Once()
	suite.mockTxnReader.On("SumFundsAmountsByType", ctx, suite.contactID).Return(map[domain.TransactionType]decimal.Decimal{
		domain.Given:    decimal.RequireFromString("50.25"),
		domain.Received: decimal.RequireFromString("120.75"),
	}, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.contactID, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("-70.50")))
}

func (suite *ContactServiceTestSuite) TestGetBalance_OwnershipEnforced() {
	ctx := context.Background()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(suite.ownedContact(), nil).Once()

	_, err := suite.service.GetBalance(ctx, suite.contactID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnReader.AssertNotCalled(suite.T(), "SumFundsAmountsByType", mock.Anything, mock.Anything)
}

// --- UpdateContact Tests ---

func (suite *ContactServiceTestSuite) TestUpdateContact_PartialUpdate() {
	ctx := context.Background()
	newEmail := "new@example.com"
	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(suite.ownedContact(), nil).Once()
	suite.mockContactRepo.On("UpdateContact", ctx, mock.MatchedBy(func(c domain.Contact) bool {
		// Name untouched, email replaced.
		return c.FirstName == "Amina" && c.Email == newEmail && c.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	contact, err := suite.service.UpdateContact(ctx, suite.contactID, dto.UpdateContactRequest{Email: &newEmail}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newEmail, contact.Email)
	suite.mockContactRepo.AssertExpectations(suite.T())
}

// --- DeleteContact Tests ---

func (suite *ContactServiceTestSuite) TestDeleteContact_Success() {
	ctx := context.Background()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.contactID).Return(suite.ownedContact(), nil).Once()
	suite.mockContactRepo.On("DeleteContact", ctx, suite.contactID).Return(nil).Once()

	err := suite.service.DeleteContact(ctx, suite.contactID, suite.userID)

	suite.Require().NoError(err)
	suite.mockContactRepo.AssertExpectations(suite.T())
}

func TestContactServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceTestSuite))
}
