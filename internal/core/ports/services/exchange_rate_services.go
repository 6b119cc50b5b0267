package services

import (
	"context"

	"github.com/SscSPs/fxrates_backend/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// ResolveExchangeRate returns the latest stored rate for a "FROM/TO" pair,
	// fetching and persisting it from the rate provider on a miss.
	ResolveExchangeRate(ctx context.Context, currencyPair string) (*dto.ExchangeRateResponse, error)

	// ListExchangeRates returns a page of rates ordered by source currency.
	ListExchangeRates(ctx context.Context, pageIndex, pageSize int) (*dto.ListExchangeRatesResponse, error)

	// GetExchangeRateByID retrieves a single rate.
	GetExchangeRateByID(ctx context.Context, rateID int64) (*dto.ExchangeRateResponse, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new rate and publishes it when enabled.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*dto.ExchangeRateResponse, error)

	// UpdateExchangeRate overwrites an existing rate in place.
	UpdateExchangeRate(ctx context.Context, req dto.UpdateExchangeRateRequest) (*dto.ExchangeRateResponse, error)

	// DeleteExchangeRate physically removes a rate.
	DeleteExchangeRate(ctx context.Context, rateID int64) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
