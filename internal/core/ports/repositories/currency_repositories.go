package repositories

import (
	"context"

	"github.com/SscSPs/fxrates_backend/internal/core/domain"
)

// CurrencyReader defines read operations for currency data.
// Currencies are seeded by migrations and never mutated at runtime.
type CurrencyReader interface {
	// GetByCode retrieves a currency by its 3-letter code.
	// A missing code is reported as apperrors.ErrNotFound naming the code.
	GetByCode(ctx context.Context, code string) (*domain.Currency, error)

	// GetByID retrieves a currency by its surrogate key.
	GetByID(ctx context.Context, currencyID int64) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
