package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fxrates_backend/internal/apperrors"
	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fxrates_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fxrates_backend/internal/core/ports/services"
	"github.com/SscSPs/fxrates_backend/internal/dto"
	"github.com/SscSPs/fxrates_backend/internal/utils/pagination"
)

// currencyPairSeparator splits "FROM/TO" inputs.
const currencyPairSeparator = "/"

// PublishSettings gates the new-rate event.
type PublishSettings struct {
	Enabled bool
	Topic   string
}

// exchangeRateService implements the ExchangeRateSvcFacade interface
type exchangeRateService struct {
	BaseService
	uowFactory portsrepo.UnitOfWorkFactory
	provider   portssvc.RateProvider
	publisher  portssvc.EventPublisher
	publish    PublishSettings
	now        func() time.Time
}

// ServiceOption is a functional option for configuring the exchange rate service
type ServiceOption func(*exchangeRateService)

// WithEventPublisher sets the publisher used after every successful insert.
func WithEventPublisher(publisher portssvc.EventPublisher, settings PublishSettings) ServiceOption {
	return func(s *exchangeRateService) {
		s.publisher = publisher
		s.publish = settings
	}
}

// WithClock overrides the time source used for LastRefreshed.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *exchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates the rate resolution service.
func NewExchangeRateService(uowFactory portsrepo.UnitOfWorkFactory, provider portssvc.RateProvider, options ...ServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		uowFactory: uowFactory,
		provider:   provider,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// ParseCurrencyPair splits "FROM/TO" into two upper-cased, distinct codes.
func ParseCurrencyPair(currencyPair string) (string, string, error) {
	pair := strings.TrimSpace(currencyPair)
	if pair == "" {
		return "", "", apperrors.NewValidationError("currency pair is required")
	}
	parts := strings.Split(pair, currencyPairSeparator)
	if len(parts) != 2 {
		return "", "", apperrors.NewValidationError(fmt.Sprintf("invalid currency pair %q, expected FROM/TO", currencyPair))
	}
	from := strings.ToUpper(strings.TrimSpace(parts[0]))
	to := strings.ToUpper(strings.TrimSpace(parts[1]))
	if from == "" || to == "" {
		return "", "", apperrors.NewValidationError(fmt.Sprintf("invalid currency pair %q, expected FROM/TO", currencyPair))
	}
	if from == to {
		return "", "", apperrors.NewValidationError(fmt.Sprintf("from and to currencies cannot be the same: %s", from))
	}
	return from, to, nil
}

func normalizeCodes(fromCode, toCode string) (string, string, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCode))
	to := strings.ToUpper(strings.TrimSpace(toCode))
	if from == "" || to == "" {
		return "", "", apperrors.NewValidationError("from and to currency codes are required")
	}
	if from == to {
		return "", "", apperrors.NewValidationError(fmt.Sprintf("from and to currencies cannot be the same: %s", from))
	}
	return from, to, nil
}

// resolveCurrencies looks up both codes; an unknown code is a not-found error naming it.
func (s *exchangeRateService) resolveCurrencies(ctx context.Context, uow portsrepo.UnitOfWork, fromCode, toCode string) (*domain.Currency, *domain.Currency, error) {
	from, err := uow.Currencies().GetByCode(ctx, fromCode)
	if err != nil {
		s.LogDebug(ctx, "Source currency could not be resolved", slog.String("currency_code", fromCode))
		return nil, nil, err
	}
	to, err := uow.Currencies().GetByCode(ctx, toCode)
	if err != nil {
		s.LogDebug(ctx, "Target currency could not be resolved", slog.String("currency_code", toCode))
		return nil, nil, err
	}
	return from, to, nil
}

// publishNewRate hands the view to the publisher. It never fails the caller.
func (s *exchangeRateService) publishNewRate(ctx context.Context, view dto.ExchangeRateResponse) {
	if !s.publish.Enabled || s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, s.publish.Topic, view)
}

func (s *exchangeRateService) insert(ctx context.Context, uow portsrepo.UnitOfWork, record *domain.ExchangeRate, from, to *domain.Currency) (*dto.ExchangeRateResponse, error) {
	err := uow.ExecuteTransaction(ctx, func(ctx context.Context) error {
		uow.ExchangeRates().Add(record)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to persist exchange rate",
			slog.String("from_currency", from.Code),
			slog.String("to_currency", to.Code))
		return nil, err
	}

	record.FromCurrency = from
	record.ToCurrency = to
	view := dto.ToExchangeRateResponse(record)
	s.publishNewRate(ctx, view)

	s.LogInfo(ctx, "Exchange rate stored",
		slog.Int64("exchange_rate_id", record.ExchangeRateID),
		slog.String("from_currency", from.Code),
		slog.String("to_currency", to.Code))
	return &view, nil
}

func (s *exchangeRateService) ResolveExchangeRate(ctx context.Context, currencyPair string) (*dto.ExchangeRateResponse, error) {
	fromCode, toCode, err := ParseCurrencyPair(currencyPair)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork()
	stored, err := uow.ExchangeRates().FindLatest(ctx, fromCode, toCode)
	if err == nil {
		view := dto.ToExchangeRateResponse(stored)
		return &view, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up stored exchange rate",
			slog.String("from_currency", fromCode),
			slog.String("to_currency", toCode))
		return nil, err
	}

	s.LogDebug(ctx, "No stored exchange rate, querying provider",
		slog.String("from_currency", fromCode),
		slog.String("to_currency", toCode))
	quote, err := s.provider.GetExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		s.LogError(ctx, err, "Rate provider request failed",
			slog.String("from_currency", fromCode),
			slog.String("to_currency", toCode))
		if errors.Is(err, apperrors.ErrUpstream) {
			return nil, err
		}
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("failed to fetch exchange rate for %s/%s", fromCode, toCode), err)
	}
	if quote == nil {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("no exchange rate available for %s/%s", fromCode, toCode), nil)
	}

	from, to, err := s.resolveCurrencies(ctx, uow, fromCode, toCode)
	if err != nil {
		return nil, err
	}

	record := &domain.ExchangeRate{
		FromCurrencyID: from.CurrencyID,
		ToCurrencyID:   to.CurrencyID,
		BidPrice:       quote.BidPrice,
		AskPrice:       quote.AskPrice,
		Rate:           quote.Rate,
		LastRefreshed:  quote.LastRefreshed,
		TimeZone:       quote.TimeZone,
	}
	return s.insert(ctx, uow, record, from, to)
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context, pageIndex, pageSize int) (*dto.ListExchangeRatesResponse, error) {
	if err := pagination.Validate(pageIndex, pageSize); err != nil {
		return nil, err
	}

	page, err := s.uowFactory.NewUnitOfWork().ExchangeRates().Paginate(ctx, pageIndex, pageSize, portsrepo.RateQueryOptions{
		Include: portsrepo.IncludeCurrencies,
		OrderBy: portsrepo.OrderByFromCurrency,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates",
			slog.Int("page_index", pageIndex),
			slog.Int("page_size", pageSize))
		return nil, err
	}
	return dto.ToListExchangeRatesResponse(page), nil
}

func (s *exchangeRateService) GetExchangeRateByID(ctx context.Context, rateID int64) (*dto.ExchangeRateResponse, error) {
	rate, err := s.uowFactory.NewUnitOfWork().ExchangeRates().FindFirst(ctx, portsrepo.RateQueryOptions{
		Filter:  portsrepo.RateFilter{ExchangeRateID: &rateID},
		Include: portsrepo.IncludeCurrencies,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("exchange rate with ID %d not found", rateID))
		}
		s.LogError(ctx, err, "Failed to get exchange rate", slog.Int64("exchange_rate_id", rateID))
		return nil, err
	}
	view := dto.ToExchangeRateResponse(rate)
	return &view, nil
}

func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*dto.ExchangeRateResponse, error) {
	fromCode, toCode, err := normalizeCodes(req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork()
	from, to, err := s.resolveCurrencies(ctx, uow, fromCode, toCode)
	if err != nil {
		return nil, err
	}

	record := &domain.ExchangeRate{
		FromCurrencyID: from.CurrencyID,
		ToCurrencyID:   to.CurrencyID,
		BidPrice:       req.BidPrice,
		AskPrice:       req.AskPrice,
		Rate:           req.ExchangeRate,
		LastRefreshed:  s.now().UTC(),
		TimeZone:       req.TimeZone,
	}
	return s.insert(ctx, uow, record, from, to)
}

func (s *exchangeRateService) UpdateExchangeRate(ctx context.Context, req dto.UpdateExchangeRateRequest) (*dto.ExchangeRateResponse, error) {
	fromCode, toCode, err := normalizeCodes(req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork()
	rate, err := uow.ExchangeRates().GetByID(ctx, req.ExchangeRateID)
	if err != nil {
		return nil, err
	}

	// Both references are resolved before the loaded record is touched.
	from, to, err := s.resolveCurrencies(ctx, uow, fromCode, toCode)
	if err != nil {
		return nil, err
	}

	updated := *rate
	updated.FromCurrencyID = from.CurrencyID
	updated.ToCurrencyID = to.CurrencyID
	updated.BidPrice = req.BidPrice
	updated.AskPrice = req.AskPrice
	updated.Rate = req.ExchangeRate
	updated.TimeZone = req.TimeZone
	updated.LastRefreshed = s.now().UTC()

	err = uow.ExecuteTransaction(ctx, func(ctx context.Context) error {
		uow.ExchangeRates().Update(&updated)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update exchange rate", slog.Int64("exchange_rate_id", req.ExchangeRateID))
		return nil, err
	}

	updated.FromCurrency = from
	updated.ToCurrency = to
	view := dto.ToExchangeRateResponse(&updated)
	s.LogInfo(ctx, "Exchange rate updated", slog.Int64("exchange_rate_id", updated.ExchangeRateID))
	return &view, nil
}

func (s *exchangeRateService) DeleteExchangeRate(ctx context.Context, rateID int64) error {
	uow := s.uowFactory.NewUnitOfWork()
	rate, err := uow.ExchangeRates().GetByID(ctx, rateID)
	if err != nil {
		return err
	}

	err = uow.ExecuteTransaction(ctx, func(ctx context.Context) error {
		uow.ExchangeRates().Delete(rate)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete exchange rate", slog.Int64("exchange_rate_id", rateID))
		return err
	}

	s.LogInfo(ctx, "Exchange rate deleted", slog.Int64("exchange_rate_id", rateID))
	return nil
}
