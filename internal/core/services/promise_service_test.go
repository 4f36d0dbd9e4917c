package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	portssvc "github.com/wathiqah/wathiqah-backend/internal/core/ports/services"
	"github.com/wathiqah/wathiqah-backend/internal/core/services"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
)

// --- Mock PromiseRepository ---
type MockPromiseRepository struct {
	mock.Mock
}

func (m *MockPromiseRepository) FindPromiseByID(ctx context.Context, promiseID string) (*domain.Promise, error) {
	args := m.Called(ctx, promiseID)
	var promise *domain.Promise
	if args.Get(0) != nil {
		promise = args.Get(0).(*domain.Promise)
	}
	return promise, args.Error(1)
}

func (m *MockPromiseRepository) ListPromisesByUser(ctx context.Context, userID string) ([]domain.Promise, error) {
	args := m.Called(ctx, userID)
	var promises []domain.Promise
	if args.Get(0) != nil {
		promises = args.Get(0).([]domain.Promise)
	}
	return promises, args.Error(1)
}

func (m *MockPromiseRepository) SavePromise(ctx context.Context, promise domain.Promise) error {
	args := m.Called(ctx, promise)
	return args.Error(0)
}

func (m *MockPromiseRepository) UpdatePromise(ctx context.Context, promise domain.Promise) error {
	args := m.Called(ctx, promise)
	return args.Error(0)
}

func (m *MockPromiseRepository) DeletePromise(ctx context.Context, promiseID string) error {
	args := m.Called(ctx, promiseID)
	return args.Error(0)
}

// --- Test Suite ---
type PromiseServiceTestSuite struct {
	suite.Suite
	mockPromiseRepo *MockPromiseRepository
	service         portssvc.PromiseSvcFacade
	userID          string
}

func (suite *PromiseServiceTestSuite) SetupTest() {
	suite.mockPromiseRepo = new(MockPromiseRepository)
	suite.service = services.NewPromiseService(suite.mockPromiseRepo)
	suite.userID = uuid.NewString()
}

func (suite *PromiseServiceTestSuite) TestCreatePromise_StartsPending() {
	ctx := context.Background()
	req := dto.CreatePromiseRequest{
		Description: "Return the borrowed generator",
		PromiseTo:   "Amina",
		DueDate:     time.Now().Add(72 * time.Hour),
		Priority:    "HIGH",
	}

	suite.mockPromiseRepo.On("SavePromise", ctx, mock.MatchedBy(func(p domain.Promise) bool {
		return p.UserID == suite.userID && p.Status == domain.PromisePending && p.Priority == domain.PromisePriority("HIGH")
	})).Return(nil).Once()

	promise, err := suite.service.CreatePromise(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PromisePending, promise.Status)
	suite.mockPromiseRepo.AssertExpectations(suite.T())
}

func (suite *PromiseServiceTestSuite) TestUpdatePromise_StatusTransition() {
	ctx := context.Background()
	promiseID := uuid.NewString()
	fulfilled := "FULFILLED"
	suite.mockPromiseRepo.On("FindPromiseByID", ctx, promiseID).Return(&domain.Promise{
		PromiseID: promiseID,
		UserID:    suite.userID,
		Status:    domain.PromisePending,
	}, nil).Once()
	suite.mockPromiseRepo.On("UpdatePromise", ctx, mock.MatchedBy(func(p domain.Promise) bool {
		return p.Status == domain.PromiseFulfilled && p.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	promise, err := suite.service.UpdatePromise(ctx, promiseID, dto.UpdatePromiseRequest{Status: &fulfilled}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PromiseFulfilled, promise.Status)
}

func (suite *PromiseServiceTestSuite) TestGetPromise_ForbiddenForOtherUser() {
	ctx := context.Background()
	promiseID := uuid.NewString()
	suite.mockPromiseRepo.On("FindPromiseByID", ctx, promiseID).Return(&domain.Promise{
		PromiseID: promiseID,
		UserID:    uuid.NewString(),
	}, nil).Once()

	_, err := suite.service.GetPromise(ctx, promiseID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PromiseServiceTestSuite) TestDeletePromise_OwnershipEnforced() {
	ctx := context.Background()
	promiseID := uuid.NewString()
	suite.mockPromiseRepo.On("FindPromiseByID", ctx, promiseID).Return(&domain.Promise{
		PromiseID: promiseID,
		UserID:    uuid.NewString(),
	}, nil).Once()

	err := suite.service.DeletePromise(ctx, promiseID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPromiseRepo.AssertNotCalled(suite.T(), "DeletePromise", mock.Anything, mock.Anything)
}

func (suite *PromiseServiceTestSuite) TestListPromises_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockPromiseRepo.On("ListPromisesByUser", ctx, suite.userID).Return(nil, nil).Once()

	promises, err := suite.service.ListPromises(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(promises)
	suite.Empty(promises)
}

func TestPromiseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PromiseServiceTestSuite))
}
