package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/fxrates_backend/internal/apperrors"
	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fxrates_backend/internal/core/ports/repositories"
	"github.com/SscSPs/fxrates_backend/internal/models"
	"github.com/SscSPs/fxrates_backend/internal/utils/mapping"
	"github.com/SscSPs/fxrates_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxExchangeRateRepository implements portsrepo.ExchangeRateRepositoryFacade on top of a unit of work.
type PgxExchangeRateRepository struct {
	BaseRepository
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const (
	rateColumns         = `r.id, r.from_currency_id, r.to_currency_id, r.bid_price, r.ask_price, r.exchange_rate, r.last_refreshed, r.time_zone`
	fromCurrencyColumns = `fc.id, fc.code, fc.name`
	toCurrencyColumns   = `tc.id, tc.code, tc.name`
)

// Postgres error codes mapped to application errors on write.
const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// rateQuery is the compiled form of a RateQueryOptions.
type rateQuery struct {
	columns string
	from    string
	where   string
	orderBy string
	args    []any
	include portsrepo.IncludeSet
}

func buildRateQuery(opts portsrepo.RateQueryOptions) rateQuery {
	q := rateQuery{
		columns: rateColumns,
		from:    `FROM exchange_rates r`,
		include: opts.Include,
	}

	joinFrom := opts.Include.Has(portsrepo.IncludeFromCurrency) || opts.Filter.FromCurrencyCode != ""
	joinTo := opts.Include.Has(portsrepo.IncludeToCurrency) || opts.Filter.ToCurrencyCode != ""
	if joinFrom {
		q.from += ` JOIN currencies fc ON fc.id = r.from_currency_id`
	}
	if joinTo {
		q.from += ` JOIN currencies tc ON tc.id = r.to_currency_id`
	}
	if opts.Include.Has(portsrepo.IncludeFromCurrency) {
		q.columns += `, ` + fromCurrencyColumns
	}
	if opts.Include.Has(portsrepo.IncludeToCurrency) {
		q.columns += `, ` + toCurrencyColumns
	}

	var conditions []string
	if opts.Filter.ExchangeRateID != nil {
		q.args = append(q.args, *opts.Filter.ExchangeRateID)
		conditions = append(conditions, fmt.Sprintf("r.id = $%d", len(q.args)))
	}
	if opts.Filter.FromCurrencyCode != "" {
		q.args = append(q.args, strings.ToUpper(opts.Filter.FromCurrencyCode))
		conditions = append(conditions, fmt.Sprintf("fc.code = $%d", len(q.args)))
	}
	if opts.Filter.ToCurrencyCode != "" {
		q.args = append(q.args, strings.ToUpper(opts.Filter.ToCurrencyCode))
		conditions = append(conditions, fmt.Sprintf("tc.code = $%d", len(q.args)))
	}
	if len(conditions) > 0 {
		q.where = ` WHERE ` + strings.Join(conditions, ` AND `)
	}

	direction := "ASC"
	if opts.Descending {
		direction = "DESC"
	}
	switch opts.OrderBy {
	case portsrepo.OrderByFromCurrency:
		q.orderBy = fmt.Sprintf(` ORDER BY r.from_currency_id %s, r.id %s`, direction, direction)
	case portsrepo.OrderByLastRefreshed:
		q.orderBy = fmt.Sprintf(` ORDER BY r.last_refreshed %s, r.id %s`, direction, direction)
	default:
		q.orderBy = fmt.Sprintf(` ORDER BY r.id %s`, direction)
	}
	return q
}

func (q rateQuery) selectSQL() string {
	return `SELECT ` + q.columns + ` ` + q.from + q.where + q.orderBy
}

func (q rateQuery) countSQL() string {
	return `SELECT COUNT(*) ` + q.from + q.where
}

// scanRate reads one row in the column layout produced by buildRateQuery.
func scanRate(row pgx.Row, include portsrepo.IncludeSet) (domain.ExchangeRate, error) {
	var m models.ExchangeRate
	var from, to models.Currency
	dest := []any{
		&m.ExchangeRateID,
		&m.FromCurrencyID,
		&m.ToCurrencyID,
		&m.BidPrice,
		&m.AskPrice,
		&m.ExchangeRate,
		&m.LastRefreshed,
		&m.TimeZone,
	}
	if include.Has(portsrepo.IncludeFromCurrency) {
		dest = append(dest, &from.CurrencyID, &from.Code, &from.Name)
	}
	if include.Has(portsrepo.IncludeToCurrency) {
		dest = append(dest, &to.CurrencyID, &to.Code, &to.Name)
	}
	if err := row.Scan(dest...); err != nil {
		return domain.ExchangeRate{}, err
	}

	rate := mapping.ToDomainExchangeRate(m)
	if include.Has(portsrepo.IncludeFromCurrency) {
		c := mapping.ToDomainCurrency(from)
		rate.FromCurrency = &c
	}
	if include.Has(portsrepo.IncludeToCurrency) {
		c := mapping.ToDomainCurrency(to)
		rate.ToCurrency = &c
	}
	return rate, nil
}

func (r *PgxExchangeRateRepository) list(ctx context.Context, q rateQuery, sql string, args ...any) ([]domain.ExchangeRate, error) {
	rows, err := r.conn().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		return scanRate(row, q.include)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return rates, nil
}

// GetByID retrieves an exchange rate by its ID.
func (r *PgxExchangeRateRepository) GetByID(ctx context.Context, rateID int64) (*domain.ExchangeRate, error) {
	rate, err := r.FindFirst(ctx, portsrepo.RateQueryOptions{
		Filter: portsrepo.RateFilter{ExchangeRateID: &rateID},
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("exchange rate with ID %d not found", rateID))
		}
		return nil, err
	}
	return rate, nil
}

// GetAll retrieves all exchange rates ordered by id.
func (r *PgxExchangeRateRepository) GetAll(ctx context.Context) ([]domain.ExchangeRate, error) {
	q := buildRateQuery(portsrepo.RateQueryOptions{})
	return r.list(ctx, q, q.selectSQL(), q.args...)
}

// GetAllWithCurrencyDetails retrieves all exchange rates with both currencies joined.
func (r *PgxExchangeRateRepository) GetAllWithCurrencyDetails(ctx context.Context) ([]domain.ExchangeRate, error) {
	q := buildRateQuery(portsrepo.RateQueryOptions{Include: portsrepo.IncludeCurrencies})
	return r.list(ctx, q, q.selectSQL(), q.args...)
}

// FindFirst returns the first rate matching opts in the requested order.
func (r *PgxExchangeRateRepository) FindFirst(ctx context.Context, opts portsrepo.RateQueryOptions) (*domain.ExchangeRate, error) {
	q := buildRateQuery(opts)
	rate, err := scanRate(r.conn().QueryRow(ctx, q.selectSQL()+` LIMIT 1`, q.args...), q.include)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate not found")
		}
		return nil, fmt.Errorf("failed to find exchange rate: %w", err)
	}
	return &rate, nil
}

// FindLatest returns the most recently refreshed rate for the pair. Equal
// timestamps are resolved in favour of the most recently inserted row.
func (r *PgxExchangeRateRepository) FindLatest(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	rate, err := r.FindFirst(ctx, portsrepo.RateQueryOptions{
		Filter: portsrepo.RateFilter{
			FromCurrencyCode: fromCurrencyCode,
			ToCurrencyCode:   toCurrencyCode,
		},
		Include:    portsrepo.IncludeCurrencies,
		OrderBy:    portsrepo.OrderByLastRefreshed,
		Descending: true,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no exchange rate stored for %s/%s", fromCurrencyCode, toCurrencyCode))
		}
		return nil, err
	}
	return rate, nil
}

// Paginate returns one page of the rates matching opts together with the total match count.
func (r *PgxExchangeRateRepository) Paginate(ctx context.Context, pageIndex, pageSize int, opts portsrepo.RateQueryOptions) (domain.Page[domain.ExchangeRate], error) {
	if err := pagination.Validate(pageIndex, pageSize); err != nil {
		return domain.Page[domain.ExchangeRate]{}, err
	}

	q := buildRateQuery(opts)
	var total int
	if err := r.conn().QueryRow(ctx, q.countSQL(), q.args...).Scan(&total); err != nil {
		return domain.Page[domain.ExchangeRate]{}, fmt.Errorf("failed to count exchange rates: %w", err)
	}

	if pagination.PastEnd(pageIndex, pageSize, total) {
		return domain.NewPage[domain.ExchangeRate](nil, total, pageIndex, pageSize), nil
	}
	offset := pagination.Offset(pageIndex, pageSize)

	args := make([]any, 0, len(q.args)+2)
	args = append(args, q.args...)
	args = append(args, pageSize, offset)
	sql := fmt.Sprintf("%s LIMIT $%d OFFSET $%d", q.selectSQL(), len(q.args)+1, len(q.args)+2)

	rates, err := r.list(ctx, q, sql, args...)
	if err != nil {
		return domain.Page[domain.ExchangeRate]{}, err
	}
	return domain.NewPage(rates, total, pageIndex, pageSize), nil
}

// mapWriteError converts constraint violations into application errors.
func mapWriteError(action string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return apperrors.NewNotFoundError("referenced currency not found")
		case pgCheckViolation:
			return apperrors.NewValidationError("from and to currencies cannot be the same")
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// Add schedules an insert of rate; its ExchangeRateID is set once the insert runs.
func (r *PgxExchangeRateRepository) Add(rate *domain.ExchangeRate) {
	r.track("insert exchange rate", func(ctx context.Context, q DBTX) error {
		m := mapping.ToModelExchangeRate(*rate)
		query := `INSERT INTO exchange_rates (from_currency_id, to_currency_id, bid_price, ask_price, exchange_rate, last_refreshed, time_zone)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
		err := q.QueryRow(ctx, query,
			m.FromCurrencyID,
			m.ToCurrencyID,
			m.BidPrice,
			m.AskPrice,
			m.ExchangeRate,
			m.LastRefreshed,
			m.TimeZone,
		).Scan(&rate.ExchangeRateID)
		if err != nil {
			return mapWriteError("insert exchange rate", err)
		}
		return nil
	})
}

// Update schedules an update of every column of rate, matched by id.
func (r *PgxExchangeRateRepository) Update(rate *domain.ExchangeRate) {
	r.track("update exchange rate", func(ctx context.Context, q DBTX) error {
		m := mapping.ToModelExchangeRate(*rate)
		query := `UPDATE exchange_rates
			SET from_currency_id = $1, to_currency_id = $2, bid_price = $3, ask_price = $4,
				exchange_rate = $5, last_refreshed = $6, time_zone = $7
			WHERE id = $8`
		tag, err := q.Exec(ctx, query,
			m.FromCurrencyID,
			m.ToCurrencyID,
			m.BidPrice,
			m.AskPrice,
			m.ExchangeRate,
			m.LastRefreshed,
			m.TimeZone,
			m.ExchangeRateID,
		)
		if err != nil {
			return mapWriteError("update exchange rate", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("exchange rate with ID %d not found", m.ExchangeRateID))
		}
		return nil
	})
}

// Delete schedules the removal of rate, matched by id.
func (r *PgxExchangeRateRepository) Delete(rate *domain.ExchangeRate) {
	rateID := rate.ExchangeRateID
	r.track("delete exchange rate", func(ctx context.Context, q DBTX) error {
		tag, err := q.Exec(ctx, `DELETE FROM exchange_rates WHERE id = $1`, rateID)
		if err != nil {
			return fmt.Errorf("failed to delete exchange rate %d: %w", rateID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("exchange rate with ID %d not found", rateID))
		}
		return nil
	})
}
