package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/SscSPs/fxrates_backend/internal/apperrors"
	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	portssvc "github.com/SscSPs/fxrates_backend/internal/core/ports/services"
	"github.com/SscSPs/fxrates_backend/internal/core/services"
	"github.com/SscSPs/fxrates_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) GetExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.RateQuote, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateQuote), args.Error(1)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, payload any) {
	m.Called(ctx, topic, payload)
}

const newRateTopic = "fx-rate-added"

var (
	fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	t0       = time.Date(2024, 5, 31, 16, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	store     *memoryStore
	provider  *MockRateProvider
	publisher *MockEventPublisher
	service   portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.store = newMemoryStore()
	suite.provider = new(MockRateProvider)
	suite.publisher = new(MockEventPublisher)
	suite.service = services.NewExchangeRateService(suite.store, suite.provider,
		services.WithEventPublisher(suite.publisher, services.PublishSettings{Enabled: true, Topic: newRateTopic}),
		services.WithClock(func() time.Time { return fixedNow }),
	)
}

func (suite *ExchangeRateServiceTestSuite) seedRate(from, to string, rate string, refreshed time.Time) int64 {
	return suite.store.seed(domain.ExchangeRate{
		FromCurrencyID: suite.store.currencies[from].CurrencyID,
		ToCurrencyID:   suite.store.currencies[to].CurrencyID,
		BidPrice:       dec(rate),
		AskPrice:       dec(rate),
		Rate:           dec(rate),
		LastRefreshed:  refreshed,
		TimeZone:       "UTC",
	})
}

// --- Resolve ---

func (suite *ExchangeRateServiceTestSuite) TestResolve_ReturnsMostRecentStoredRate() {
	ctx := context.Background()
	suite.seedRate("USD", "EUR", "0.91", t0.Add(-time.Hour))
	latestID := suite.seedRate("USD", "EUR", "0.92", t0)
	suite.seedRate("USD", "EUR", "0.90", t0.Add(-2*time.Hour))

	view, err := suite.service.ResolveExchangeRate(ctx, "usd/eur")

	suite.Require().NoError(err)
	suite.Equal(latestID, view.ExchangeRateID)
	suite.True(dec("0.92").Equal(view.ExchangeRate))
	suite.Equal("USD", view.FromCurrencyCode)
	suite.Equal("Euro", view.ToCurrencyName)
	suite.provider.AssertNotCalled(suite.T(), "GetExchangeRate", mock.Anything, mock.Anything, mock.Anything)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolve_FetchesPersistsAndPublishesOnMiss() {
	ctx := context.Background()
	quote := &domain.RateQuote{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "JPY",
		Rate:             dec("150.25"),
		BidPrice:         dec("150.10"),
		AskPrice:         dec("150.40"),
		LastRefreshed:    t0,
		TimeZone:         "UTC",
	}
	suite.provider.On("GetExchangeRate", ctx, "USD", "JPY").Return(quote, nil).Once()
	suite.publisher.On("Publish", ctx, newRateTopic, mock.MatchedBy(func(p dto.ExchangeRateResponse) bool {
		return p.FromCurrencyCode == "USD" && p.ToCurrencyCode == "JPY" && p.ExchangeRate.Equal(dec("150.25")) &&
			p.BidPrice.Equal(dec("150.10")) && p.AskPrice.Equal(dec("150.40")) && p.LastRefreshed.Equal(t0)
	})).Return().Once()

	view, err := suite.service.ResolveExchangeRate(ctx, "USD/JPY")

	suite.Require().NoError(err)
	suite.Require().Len(suite.store.rates, 1)
	stored := suite.store.rates[0]
	suite.Equal(int64(1), stored.FromCurrencyID)
	suite.Equal(int64(5), stored.ToCurrencyID)
	suite.True(dec("150.25").Equal(stored.Rate))
	suite.True(t0.Equal(stored.LastRefreshed))
	suite.Equal(stored.ExchangeRateID, view.ExchangeRateID)
	suite.Equal("Japanese Yen", view.ToCurrencyName)
	suite.provider.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolve_DoesNotPublishWhenDisabled() {
	ctx := context.Background()
	svc := services.NewExchangeRateService(suite.store, suite.provider,
		services.WithEventPublisher(suite.publisher, services.PublishSettings{Enabled: false, Topic: newRateTopic}),
	)
	suite.provider.On("GetExchangeRate", ctx, "EUR", "GBP").Return(&domain.RateQuote{Rate: dec("0.85"), LastRefreshed: t0}, nil).Once()

	_, err := svc.ResolveExchangeRate(ctx, "EUR/GBP")

	suite.Require().NoError(err)
	suite.Len(suite.store.rates, 1)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolve_RejectsInvalidPairsBeforeAnyIO() {
	for _, pair := range []string{"", "   ", "USD", "USD/EUR/GBP", "/EUR", "USD/", "usd/USD"} {
		suite.Run(pair, func() {
			_, err := suite.service.ResolveExchangeRate(context.Background(), pair)
			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.Zero(suite.store.reads)
	suite.provider.AssertNotCalled(suite.T(), "GetExchangeRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolve_ProviderFailureIsUpstreamError() {
	ctx := context.Background()
	suite.provider.On("GetExchangeRate", ctx, "USD", "CHF").Return(nil, errors.New("connection refused")).Once()

	view, err := suite.service.ResolveExchangeRate(ctx, "USD/CHF")

	suite.Nil(view)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUpstream)
	suite.Empty(suite.store.rates)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolve_NilProviderResultIsUpstreamError() {
	ctx := context.Background()
	suite.provider.On("GetExchangeRate", ctx, "USD", "CHF").Return(nil, nil).Once()

	_, err := suite.service.ResolveExchangeRate(ctx, "USD/CHF")

	suite.ErrorIs(err, apperrors.ErrUpstream)
	suite.Empty(suite.store.rates)
}

func (suite *ExchangeRateServiceTestSuite) TestResolve_UnknownCurrencyAfterFetch() {
	ctx := context.Background()
	suite.provider.On("GetExchangeRate", ctx, "USD", "AUD").Return(&domain.RateQuote{Rate: dec("1.5"), LastRefreshed: t0}, nil).Once()

	_, err := suite.service.ResolveExchangeRate(ctx, "USD/AUD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "AUD")
	suite.Empty(suite.store.rates)
}

func (suite *ExchangeRateServiceTestSuite) TestResolve_PersistFailureIsTransactionError() {
	ctx := context.Background()
	cause := errors.New("disk full")
	suite.store.flushErr = cause
	suite.provider.On("GetExchangeRate", ctx, "USD", "EUR").Return(&domain.RateQuote{Rate: dec("0.9"), LastRefreshed: t0}, nil).Once()

	_, err := suite.service.ResolveExchangeRate(ctx, "USD/EUR")

	suite.ErrorIs(err, apperrors.ErrTransactionFailed)
	suite.ErrorIs(err, cause)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

// --- List / Get ---

func (suite *ExchangeRateServiceTestSuite) TestList_PagesThroughAllRecords() {
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		suite.seedRate("EUR", "USD", "1.08", t0)
	}

	sizes := []int{10, 10, 5}
	for pageIndex, want := range sizes {
		page, err := suite.service.ListExchangeRates(ctx, pageIndex, 10)
		suite.Require().NoError(err)
		suite.Len(page.Items, want)
		suite.Equal(25, page.TotalCount)
		suite.Equal(3, page.TotalPages)
	}

	page, err := suite.service.ListExchangeRates(ctx, 3, 10)
	suite.Require().NoError(err)
	suite.Empty(page.Items)
	suite.Equal(25, page.TotalCount)
}

func (suite *ExchangeRateServiceTestSuite) TestList_HugePageIndexIsEmpty() {
	suite.seedRate("EUR", "USD", "1.08", t0)

	page, err := suite.service.ListExchangeRates(context.Background(), math.MaxInt/10+1, 10)

	suite.Require().NoError(err)
	suite.NotNil(page.Items)
	suite.Empty(page.Items)
	suite.Equal(1, page.TotalCount)
}

func (suite *ExchangeRateServiceTestSuite) TestList_OrdersBySourceCurrency() {
	ctx := context.Background()
	suite.seedRate("GBP", "USD", "1.27", t0)
	suite.seedRate("USD", "EUR", "0.92", t0)
	suite.seedRate("EUR", "USD", "1.08", t0)

	page, err := suite.service.ListExchangeRates(ctx, 0, 10)

	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 3)
	suite.Equal("USD", page.Items[0].FromCurrencyCode)
	suite.Equal("EUR", page.Items[1].FromCurrencyCode)
	suite.Equal("GBP", page.Items[2].FromCurrencyCode)
}

func (suite *ExchangeRateServiceTestSuite) TestList_EmptyStore() {
	page, err := suite.service.ListExchangeRates(context.Background(), 0, 10)

	suite.Require().NoError(err)
	suite.NotNil(page.Items)
	suite.Empty(page.Items)
	suite.Zero(page.TotalCount)
}

func (suite *ExchangeRateServiceTestSuite) TestList_InvalidPaging() {
	_, err := suite.service.ListExchangeRates(context.Background(), -1, 10)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ListExchangeRates(context.Background(), 0, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestGetByID_NotFound() {
	_, err := suite.service.GetExchangeRateByID(context.Background(), 42)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "42")
}

// --- Create ---

func (suite *ExchangeRateServiceTestSuite) TestCreate_RoundTripsThroughGetByID() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "cad",
		ToCurrencyCode:   "CHF",
		ExchangeRate:     dec("0.6512"),
		BidPrice:         dec("0.6510"),
		AskPrice:         dec("0.6514"),
		TimeZone:         "UTC",
	}
	suite.publisher.On("Publish", ctx, newRateTopic, mock.AnythingOfType("dto.ExchangeRateResponse")).Return().Once()

	created, err := suite.service.CreateExchangeRate(ctx, req)
	suite.Require().NoError(err)
	suite.NotZero(created.ExchangeRateID)
	suite.True(fixedNow.Equal(created.LastRefreshed))

	fetched, err := suite.service.GetExchangeRateByID(ctx, created.ExchangeRateID)
	suite.Require().NoError(err)
	suite.Equal("CAD", fetched.FromCurrencyCode)
	suite.Equal("CHF", fetched.ToCurrencyCode)
	suite.True(req.ExchangeRate.Equal(fetched.ExchangeRate))
	suite.True(req.BidPrice.Equal(fetched.BidPrice))
	suite.True(req.AskPrice.Equal(fetched.AskPrice))
	suite.Equal(req.TimeZone, fetched.TimeZone)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreate_UnknownCurrency() {
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "USD", ToCurrencyCode: "XYZ", ExchangeRate: dec("1")}

	_, err := suite.service.CreateExchangeRate(context.Background(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "XYZ")
	suite.Empty(suite.store.rates)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreate_SameCurrencies() {
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "usd", ToCurrencyCode: "USD", ExchangeRate: dec("1")}

	_, err := suite.service.CreateExchangeRate(context.Background(), req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.store.reads)
}

func (suite *ExchangeRateServiceTestSuite) TestCreate_EmptyCode() {
	for _, req := range []dto.CreateExchangeRateRequest{
		{FromCurrencyCode: "", ToCurrencyCode: "USD"},
		{FromCurrencyCode: "USD", ToCurrencyCode: "  "},
	} {
		_, err := suite.service.CreateExchangeRate(context.Background(), req)

		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.Zero(suite.store.reads)
	suite.Empty(suite.store.rates)
}

// --- Update ---

func (suite *ExchangeRateServiceTestSuite) TestUpdate_OverwritesInPlace() {
	ctx := context.Background()
	id := suite.seedRate("USD", "EUR", "0.90", t0)
	req := dto.UpdateExchangeRateRequest{
		ExchangeRateID:   id,
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "GBP",
		ExchangeRate:     dec("0.79"),
		BidPrice:         dec("0.78"),
		AskPrice:         dec("0.80"),
		TimeZone:         "Europe/London",
	}

	view, err := suite.service.UpdateExchangeRate(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(id, view.ExchangeRateID)
	suite.Require().Len(suite.store.rates, 1)
	stored := suite.store.rates[0]
	suite.Equal(int64(6), stored.ToCurrencyID)
	suite.True(dec("0.79").Equal(stored.Rate))
	suite.Equal("Europe/London", stored.TimeZone)
	suite.True(fixedNow.Equal(stored.LastRefreshed))
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestUpdate_UnknownCurrencyLeavesRecordUntouched() {
	ctx := context.Background()
	id := suite.seedRate("USD", "EUR", "0.90", t0)
	before := suite.store.rates[0]
	req := dto.UpdateExchangeRateRequest{
		ExchangeRateID:   id,
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "ZZZ",
		ExchangeRate:     dec("5"),
	}

	_, err := suite.service.UpdateExchangeRate(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(before, suite.store.rates[0])
	suite.Zero(suite.store.commits)
}

func (suite *ExchangeRateServiceTestSuite) TestUpdate_MissingRecord() {
	req := dto.UpdateExchangeRateRequest{ExchangeRateID: 99, FromCurrencyCode: "USD", ToCurrencyCode: "EUR"}

	_, err := suite.service.UpdateExchangeRate(context.Background(), req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Delete ---

func (suite *ExchangeRateServiceTestSuite) TestDelete_RemovesRecord() {
	id := suite.seedRate("USD", "EUR", "0.90", t0)
	suite.seedRate("EUR", "USD", "1.10", t0)

	err := suite.service.DeleteExchangeRate(context.Background(), id)

	suite.Require().NoError(err)
	suite.Len(suite.store.rates, 1)
	_, found := suite.store.find(id)
	suite.False(found)
}

func (suite *ExchangeRateServiceTestSuite) TestDelete_MissingRecordLeavesStoreUnchanged() {
	suite.seedRate("USD", "EUR", "0.90", t0)
	suite.seedRate("EUR", "USD", "1.10", t0)

	err := suite.service.DeleteExchangeRate(context.Background(), 7)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Len(suite.store.rates, 2)
	suite.Zero(suite.store.commits)
}

// --- Run Test Suite ---
func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func TestParseCurrencyPair(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantFrom string
		wantTo   string
		wantErr  bool
	}{
		{name: "upper case", input: "USD/EUR", wantFrom: "USD", wantTo: "EUR"},
		{name: "mixed case with spaces", input: " usd / Jpy ", wantFrom: "USD", wantTo: "JPY"},
		{name: "empty", input: "", wantErr: true},
		{name: "no separator", input: "USDEUR", wantErr: true},
		{name: "three parts", input: "USD/EUR/GBP", wantErr: true},
		{name: "missing target", input: "USD/", wantErr: true},
		{name: "identical after normalisation", input: "eur/EUR", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := services.ParseCurrencyPair(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}
