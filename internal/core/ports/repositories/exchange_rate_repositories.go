package repositories

import (
	"context"

	"github.com/SscSPs/fxrates_backend/internal/core/domain"
)

// IncludeSet selects which currency references are eager-loaded with a rate.
type IncludeSet uint8

const (
	IncludeFromCurrency IncludeSet = 1 << iota
	IncludeToCurrency

	IncludeNone       IncludeSet = 0
	IncludeCurrencies            = IncludeFromCurrency | IncludeToCurrency
)

// Has reports whether flag is part of s.
func (s IncludeSet) Has(flag IncludeSet) bool {
	return s&flag == flag
}

// RateOrderKey is the column a rate listing is ordered by. Ties are broken by id.
type RateOrderKey int

const (
	OrderByID RateOrderKey = iota
	OrderByFromCurrency
	OrderByLastRefreshed
)

// RateFilter restricts which rates a query returns. Zero fields are ignored.
type RateFilter struct {
	ExchangeRateID   *int64
	FromCurrencyCode string
	ToCurrencyCode   string
}

// RateQueryOptions describes a single rate query.
type RateQueryOptions struct {
	Filter     RateFilter
	Include    IncludeSet
	OrderBy    RateOrderKey
	Descending bool
}

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// GetByID retrieves a rate without its currency references.
	GetByID(ctx context.Context, rateID int64) (*domain.ExchangeRate, error)

	// GetAll retrieves every stored rate ordered by id.
	GetAll(ctx context.Context) ([]domain.ExchangeRate, error)

	// GetAllWithCurrencyDetails retrieves every stored rate with both currencies loaded.
	GetAllWithCurrencyDetails(ctx context.Context) ([]domain.ExchangeRate, error)

	// FindFirst returns the first rate matching opts, or apperrors.ErrNotFound.
	FindFirst(ctx context.Context, opts RateQueryOptions) (*domain.ExchangeRate, error)

	// FindLatest returns the most recently refreshed rate stored for the pair,
	// with both currencies loaded, or apperrors.ErrNotFound.
	FindLatest(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// Paginate returns page pageIndex (0-based) of the rates matching opts.
	// A page past the end yields no items and the full TotalCount.
	Paginate(ctx context.Context, pageIndex, pageSize int, opts RateQueryOptions) (domain.Page[domain.ExchangeRate], error)
}

// ExchangeRateWriter records changes in the unit of work's change set.
// Nothing is written until the change set is flushed.
type ExchangeRateWriter interface {
	// Add schedules an insert. The generated id is set on rate when flushed.
	Add(rate *domain.ExchangeRate)

	// Update schedules an in-place update of rate, matched by id.
	Update(rate *domain.ExchangeRate)

	// Delete schedules the physical removal of rate, matched by id.
	Delete(rate *domain.ExchangeRate)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
