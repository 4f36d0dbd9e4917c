package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	"github.com/wathiqah/wathiqah-backend/internal/core/ports/cacheport"
	"github.com/wathiqah/wathiqah-backend/internal/core/ports/fxsource"
	portssvc "github.com/wathiqah/wathiqah-backend/internal/core/ports/services"
	"github.com/wathiqah/wathiqah-backend/internal/core/services"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	var rate *domain.ExchangeRate
	if args.Get(0) != nil {
		rate = args.Get(0).(*domain.ExchangeRate)
	}
	return rate, args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	var rates []domain.ExchangeRate
	if args.Get(0) != nil {
		rates = args.Get(0).([]domain.ExchangeRate)
	}
	return rates, args.Error(1)
}

func (m *MockExchangeRateRepository) ListRateHistory(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRateHistory, error) {
	args := m.Called(ctx, fromCode, toCode, limit)
	var history []domain.ExchangeRateHistory
	if args.Get(0) != nil {
		history = args.Get(0).([]domain.ExchangeRateHistory)
	}
	return history, args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) AppendRateHistory(ctx context.Context, history domain.ExchangeRateHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

// --- Mock RateCache ---
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) GetRate(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockRateCache) SetRate(ctx context.Context, key string, rate decimal.Decimal, ttl time.Duration) error {
	args := m.Called(ctx, key, rate, ttl)
	return args.Error(0)
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
	name string
}

func (m *MockRateSource) Name() string {
	return m.name
}

func (m *MockRateSource) FetchLatestUSDRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	var rates map[string]decimal.Decimal
	if args.Get(0) != nil {
		rates = args.Get(0).(map[string]decimal.Decimal)
	}
	return rates, args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockExchangeRateRepository
	mockCache   *MockRateCache
	mockPrimary *MockRateSource
	mockBackup  *MockRateSource
	service     portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.mockCache = new(MockRateCache)
	suite.mockPrimary = &MockRateSource{name: "open-exchange-rates"}
	suite.mockBackup = &MockRateSource{name: "exchange-rate-api"}
	suite.service = services.NewExchangeRateService(
		suite.mockRepo,
		suite.mockCache,
		[]fxsource.RateSource{suite.mockPrimary, suite.mockBackup},
		time.Hour,
		nil,
	)
}

// expectUSDRate wires a cache miss followed by a store hit for USD->code,
// including the write-through cache warm.
func (suite *ExchangeRateServiceTestSuite) expectUSDRate(code string, rate decimal.Decimal) {
	key := cacheport.RateKey("USD", code)
	suite.mockCache.On("GetRate", mock.Anything, key).Return(decimal.Decimal{}, false, nil).Once()
	suite.mockRepo.On("FindRate", mock.Anything, "USD", code).Return(&domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   code,
		Rate:             rate,
	}, nil).Once()
	suite.mockCache.On("SetRate", mock.Anything, key, rate, time.Hour).Return(nil).Once()
}

// --- GetRate Tests ---

func (suite *ExchangeRateServiceTestSuite) TestGetRate_SameCurrency() {
	rate, err := suite.service.GetRate(context.Background(), "NGN", "NGN")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	// Identity needs no lookups at all.
	suite.mockCache.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_FromUSD() {
	suite.expectUSDRate("NGN", decimal.RequireFromString("1600.005"))

	rate, err := suite.service.GetRate(context.Background(), "USD", "NGN")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("1600.005")))
	suite.mockCache.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_ToUSD_Reciprocal() {
	suite.expectUSDRate("EUR", decimal.RequireFromString("0.8"))

	rate, err := suite.service.GetRate(context.Background(), "EUR", "USD")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("1.25")), "expected 1/0.8, got %s", rate)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_CrossCurrencyPivot() {
	// EUR->GBP must be rateGBP / rateEUR, both relative to USD.
	suite.expectUSDRate("EUR", decimal.RequireFromString("0.8"))
	suite.expectUSDRate("GBP", decimal.RequireFromString("0.75"))

	rate, err := suite.service.GetRate(context.Background(), "EUR", "GBP")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("0.9375")), "expected 0.75/0.8, got %s", rate)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_CacheHitSkipsStore() {
	key := cacheport.RateKey("USD", "NGN")
	suite.mockCache.On("GetRate", mock.Anything, key).Return(decimal.RequireFromString("1520.75"), true, nil).Once()

	rate, err := suite.service.GetRate(context.Background(), "USD", "NGN")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("1520.75")))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_CacheErrorFallsBackToStore() {
	key := cacheport.RateKey("USD", "CAD")
	suite.mockCache.On("GetRate", mock.Anything, key).Return(decimal.Decimal{}, false, errors.New("redis down")).Once()
	suite.mockRepo.On("FindRate", mock.Anything, "USD", "CAD").Return(&domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "CAD",
		Rate:             decimal.RequireFromString("1.35"),
	}, nil).Once()
	suite.mockCache.On("SetRate", mock.Anything, key, decimal.RequireFromString("1.35"), time.Hour).Return(nil).Once()

	rate, err := suite.service.GetRate(context.Background(), "USD", "CAD")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("1.35")))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_MissingRateUnavailable() {
	key := cacheport.RateKey("USD", "SAR")
	suite.mockCache.On("GetRate", mock.Anything, key).Return(decimal.Decimal{}, false, nil).Once()
	suite.mockRepo.On("FindRate", mock.Anything, "USD", "SAR").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetRate(context.Background(), "USD", "SAR")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_LowercaseCodesNormalized() {
	suite.expectUSDRate("NGN", decimal.RequireFromString("1600"))

	rate, err := suite.service.GetRate(context.Background(), "usd", "ngn")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("1600")))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_ZeroCachedRateFallsBackToStore() {
	// A zero rate must never reach the reciprocal division; a poisoned cache
	// entry is treated like a miss and the store value wins.
	key := cacheport.RateKey("USD", "NGN")
	suite.mockCache.On("GetRate", mock.Anything, key).Return(decimal.Zero, true, nil).Once()
	suite.mockRepo.On("FindRate", mock.Anything, "USD", "NGN").Return(&domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "NGN",
		Rate:             decimal.RequireFromString("1600"),
	}, nil).Once()
	suite.mockCache.On("SetRate", mock.Anything, key, decimal.RequireFromString("1600"), time.Hour).Return(nil).Once()

	rate, err := suite.service.GetRate(context.Background(), "NGN", "USD")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("0.000625")), "expected 1/1600, got %s", rate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_NonPositiveStoredRateUnavailable() {
	key := cacheport.RateKey("USD", "EUR")
	suite.mockCache.On("GetRate", mock.Anything, key).Return(decimal.Decimal{}, false, nil).Once()
	suite.mockRepo.On("FindRate", mock.Anything, "USD", "EUR").Return(&domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.Zero,
	}, nil).Once()

	_, err := suite.service.GetRate(context.Background(), "EUR", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	// An unusable rate must not be written back into the cache.
	suite.mockCache.AssertNotCalled(suite.T(), "SetRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_InvalidCodeLength() {
	_, err := suite.service.GetRate(context.Background(), "US", "NGN")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Convert Tests ---

func (suite *ExchangeRateServiceTestSuite) TestConvert_RoundsHalfUpToTwoPlaces() {
	suite.expectUSDRate("NGN", decimal.RequireFromString("1600.005"))

	converted, err := suite.service.Convert(context.Background(), decimal.NewFromInt(100), "USD", "NGN")

	suite.Require().NoError(err)
	// 100 * 1600.005 = 160000.5 exactly; the .5 must round up, not to even.
	suite.Equal("160000.5", converted.String())
	suite.True(converted.Equal(decimal.RequireFromString("160000.50")))
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_HalfCentRoundsUp() {
	suite.expectUSDRate("EUR", decimal.RequireFromString("0.92185"))

	converted, err := suite.service.Convert(context.Background(), decimal.NewFromInt(10), "USD", "EUR")

	suite.Require().NoError(err)
	// 10 * 0.92185 = 9.2185 -> 9.22
	suite.True(converted.Equal(decimal.RequireFromString("9.22")))
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_SameCurrencyUntouched() {
	amount := decimal.RequireFromString("123.456")

	converted, err := suite.service.Convert(context.Background(), amount, "NGN", "ngn")

	suite.Require().NoError(err)
	// No rounding for identity conversions: the amount passes through as-is.
	suite.Equal("123.456", converted.String())
	suite.mockCache.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_CrossCurrency() {
	suite.expectUSDRate("NGN", decimal.RequireFromString("1600"))
	suite.expectUSDRate("EUR", decimal.RequireFromString("0.8"))

	// 1000 NGN -> EUR: 1000 * (0.8 / 1600) = 0.5
	converted, err := suite.service.Convert(context.Background(), decimal.NewFromInt(1000), "NGN", "EUR")

	suite.Require().NoError(err)
	suite.True(converted.Equal(decimal.RequireFromString("0.50")))
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_RateUnavailablePropagates() {
	key := cacheport.RateKey("USD", "AED")
	suite.mockCache.On("GetRate", mock.Anything, key).Return(decimal.Decimal{}, false, nil).Once()
	suite.mockRepo.On("FindRate", mock.Anything, "USD", "AED").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Convert(context.Background(), decimal.NewFromInt(5), "USD", "AED")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

// --- RefreshRates Tests ---

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_PrimaryProviderWins() {
	rates := map[string]decimal.Decimal{
		"NGN": decimal.RequireFromString("1600.005"),
		"EUR": decimal.RequireFromString("0.92"),
	}
	suite.mockPrimary.On("FetchLatestUSDRates", mock.Anything).Return(rates, nil).Once()
	suite.mockRepo.On("UpsertRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == "USD" && r.Provider == "open-exchange-rates"
	})).Return(nil).Times(2)
	suite.mockRepo.On("AppendRateHistory", mock.Anything, mock.MatchedBy(func(h domain.ExchangeRateHistory) bool {
		return h.FromCurrencyCode == "USD" && h.Provider == "open-exchange-rates"
	})).Return(nil).Times(2)
	suite.mockCache.On("SetRate", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(nil).Times(2)

	suite.service.RefreshRates(context.Background())

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
	suite.mockBackup.AssertNotCalled(suite.T(), "FetchLatestUSDRates", mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_FallsBackToSecondProvider() {
	suite.mockPrimary.On("FetchLatestUSDRates", mock.Anything).Return(nil, errors.New("503 from provider")).Once()
	suite.mockBackup.On("FetchLatestUSDRates", mock.Anything).Return(map[string]decimal.Decimal{
		"GBP": decimal.RequireFromString("0.79"),
	}, nil).Once()
	suite.mockRepo.On("UpsertRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.ToCurrencyCode == "GBP" && r.Provider == "exchange-rate-api"
	})).Return(nil).Once()
	suite.mockRepo.On("AppendRateHistory", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockCache.On("SetRate", mock.Anything, cacheport.RateKey("USD", "GBP"), decimal.RequireFromString("0.79"), time.Hour).Return(nil).Once()

	suite.service.RefreshRates(context.Background())

	suite.mockPrimary.AssertExpectations(suite.T())
	suite.mockBackup.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_EmptyResponseTriggersFallback() {
	suite.mockPrimary.On("FetchLatestUSDRates", mock.Anything).Return(map[string]decimal.Decimal{}, nil).Once()
	suite.mockBackup.On("FetchLatestUSDRates", mock.Anything).Return(map[string]decimal.Decimal{
		"CAD": decimal.RequireFromString("1.36"),
	}, nil).Once()
	suite.mockRepo.On("UpsertRate", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("AppendRateHistory", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockCache.On("SetRate", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

	suite.service.RefreshRates(context.Background())

	suite.mockBackup.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_AllProvidersFailLeavesStoreUntouched() {
	suite.mockPrimary.On("FetchLatestUSDRates", mock.Anything).Return(nil, errors.New("timeout")).Once()
	suite.mockBackup.On("FetchLatestUSDRates", mock.Anything).Return(nil, errors.New("bad credentials")).Once()

	suite.service.RefreshRates(context.Background())

	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRate", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendRateHistory", mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "SetRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_SkipsUnsupportedCurrencies() {
	suite.mockPrimary.On("FetchLatestUSDRates", mock.Anything).Return(map[string]decimal.Decimal{
		"NGN": decimal.RequireFromString("1600"),
		"JPY": decimal.RequireFromString("148.2"), // not in the supported set
	}, nil).Once()
	suite.mockRepo.On("UpsertRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.ToCurrencyCode == "NGN"
	})).Return(nil).Once()
	suite.mockRepo.On("AppendRateHistory", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockCache.On("SetRate", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

	suite.service.RefreshRates(context.Background())

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "UpsertRate", 1)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_SkipsNonPositiveRates() {
	suite.mockPrimary.On("FetchLatestUSDRates", mock.Anything).Return(map[string]decimal.Decimal{
		"NGN": decimal.RequireFromString("1600"),
		"EUR": decimal.Zero,
		"GBP": decimal.RequireFromString("-0.79"),
	}, nil).Once()
	suite.mockRepo.On("UpsertRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.ToCurrencyCode == "NGN"
	})).Return(nil).Once()
	suite.mockRepo.On("AppendRateHistory", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockCache.On("SetRate", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

	suite.service.RefreshRates(context.Background())

	// Only the positive NGN rate may be persisted or cached.
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "UpsertRate", 1)
	suite.mockCache.AssertNumberOfCalls(suite.T(), "SetRate", 1)
}

// --- History Tests ---

func (suite *ExchangeRateServiceTestSuite) TestGetRateHistory_DefaultLimit() {
	suite.mockRepo.On("ListRateHistory", mock.Anything, "USD", "NGN", 50).Return([]domain.ExchangeRateHistory{}, nil).Once()

	history, err := suite.service.GetRateHistory(context.Background(), "usd", "ngn", 0)

	suite.Require().NoError(err)
	suite.NotNil(history)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
