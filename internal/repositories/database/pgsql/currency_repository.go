package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fxrates_backend/internal/apperrors"
	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fxrates_backend/internal/core/ports/repositories"
	"github.com/SscSPs/fxrates_backend/internal/models"
	"github.com/SscSPs/fxrates_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyReader = (*PgxCurrencyRepository)(nil)

const currencyColumns = `id, code, name`

// GetByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE code = $1`

	var modelCurr models.Currency
	err := r.conn().QueryRow(ctx, query, code).Scan(
		&modelCurr.CurrencyID,
		&modelCurr.Code,
		&modelCurr.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency with code %s not found", code))
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// GetByID retrieves a currency by its id.
func (r *PgxCurrencyRepository) GetByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE id = $1`

	var modelCurr models.Currency
	err := r.conn().QueryRow(ctx, query, currencyID).Scan(
		&modelCurr.CurrencyID,
		&modelCurr.Code,
		&modelCurr.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency with ID %d not found", currencyID))
		}
		return nil, fmt.Errorf("failed to find currency by id %d: %w", currencyID, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY code`

	rows, err := r.conn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		var currency models.Currency
		err := row.Scan(&currency.CurrencyID, &currency.Code, &currency.Name)
		return currency, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}
