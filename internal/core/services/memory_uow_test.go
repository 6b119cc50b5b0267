package services_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/fxrates_backend/internal/apperrors"
	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fxrates_backend/internal/core/ports/repositories"
	"github.com/SscSPs/fxrates_backend/internal/utils/pagination"
)

// memoryStore is an in-memory stand-in for the database shared by every unit of work.
type memoryStore struct {
	currencies map[string]domain.Currency
	rates      []domain.ExchangeRate
	nextID     int64
	flushErr   error

	reads   int
	commits int
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{currencies: map[string]domain.Currency{}}
	for i, c := range []struct{ code, name string }{
		{"USD", "United States Dollar"},
		{"EUR", "Euro"},
		{"CAD", "Canadian Dollar"},
		{"CHF", "Swiss Franc"},
		{"JPY", "Japanese Yen"},
		{"GBP", "British Pound Sterling"},
	} {
		s.currencies[c.code] = domain.Currency{CurrencyID: int64(i + 1), Code: c.code, Name: c.name}
	}
	return s
}

func (s *memoryStore) NewUnitOfWork() portsrepo.UnitOfWork {
	return &memoryUnitOfWork{store: s}
}

// seed stores rate directly and returns its id.
func (s *memoryStore) seed(rate domain.ExchangeRate) int64 {
	s.nextID++
	rate.ExchangeRateID = s.nextID
	s.rates = append(s.rates, rate)
	return rate.ExchangeRateID
}

func (s *memoryStore) currencyByID(id int64) *domain.Currency {
	for _, c := range s.currencies {
		if c.CurrencyID == id {
			cc := c
			return &cc
		}
	}
	return nil
}

func (s *memoryStore) withIncludes(rate domain.ExchangeRate, include portsrepo.IncludeSet) domain.ExchangeRate {
	if include.Has(portsrepo.IncludeFromCurrency) {
		rate.FromCurrency = s.currencyByID(rate.FromCurrencyID)
	}
	if include.Has(portsrepo.IncludeToCurrency) {
		rate.ToCurrency = s.currencyByID(rate.ToCurrencyID)
	}
	return rate
}

func (s *memoryStore) find(id int64) (domain.ExchangeRate, bool) {
	for _, r := range s.rates {
		if r.ExchangeRateID == id {
			return r, true
		}
	}
	return domain.ExchangeRate{}, false
}

type stagedChange func(rates *[]domain.ExchangeRate, nextID *int64) error

type memoryUnitOfWork struct {
	store   *memoryStore
	pending []stagedChange
	inTx    bool
}

var _ portsrepo.UnitOfWork = (*memoryUnitOfWork)(nil)

func (u *memoryUnitOfWork) Currencies() portsrepo.CurrencyReader {
	return &memoryCurrencies{store: u.store}
}

func (u *memoryUnitOfWork) ExchangeRates() portsrepo.ExchangeRateRepositoryFacade {
	return &memoryRates{uow: u}
}

// flush applies the change set to a copy and swaps it in only when every change succeeds.
func (u *memoryUnitOfWork) flush() error {
	pending := u.pending
	u.pending = nil
	if len(pending) == 0 {
		return nil
	}
	if u.store.flushErr != nil {
		return u.store.flushErr
	}
	staged := append([]domain.ExchangeRate(nil), u.store.rates...)
	nextID := u.store.nextID
	for _, apply := range pending {
		if err := apply(&staged, &nextID); err != nil {
			return err
		}
	}
	u.store.rates = staged
	u.store.nextID = nextID
	u.store.commits++
	return nil
}

func (u *memoryUnitOfWork) BeginTransaction(ctx context.Context) error {
	if u.inTx {
		return apperrors.ErrTransactionAlreadyOpen
	}
	u.inTx = true
	return nil
}

func (u *memoryUnitOfWork) Commit(ctx context.Context) error {
	if !u.inTx {
		return apperrors.ErrTransactionNotOpen
	}
	u.inTx = false
	return u.flush()
}

func (u *memoryUnitOfWork) Rollback(ctx context.Context) error {
	if !u.inTx {
		return apperrors.ErrTransactionNotOpen
	}
	u.inTx = false
	u.pending = nil
	return nil
}

func (u *memoryUnitOfWork) ExecuteTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := u.BeginTransaction(ctx); err != nil {
		return apperrors.NewTransactionError(err)
	}
	defer func() { u.inTx = false }()
	if err := fn(ctx); err != nil {
		u.pending = nil
		return apperrors.NewTransactionError(err)
	}
	if err := u.flush(); err != nil {
		return apperrors.NewTransactionError(err)
	}
	return nil
}

func (u *memoryUnitOfWork) SaveChanges(ctx context.Context) error {
	return u.flush()
}

type memoryCurrencies struct {
	store *memoryStore
}

func (c *memoryCurrencies) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	c.store.reads++
	currency, ok := c.store.currencies[code]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency with code %s not found", code))
	}
	return &currency, nil
}

func (c *memoryCurrencies) GetByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	c.store.reads++
	if currency := c.store.currencyByID(currencyID); currency != nil {
		return currency, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency with ID %d not found", currencyID))
}

func (c *memoryCurrencies) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	c.store.reads++
	currencies := make([]domain.Currency, 0, len(c.store.currencies))
	for _, currency := range c.store.currencies {
		currencies = append(currencies, currency)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i].Code < currencies[j].Code })
	return currencies, nil
}

type memoryRates struct {
	uow *memoryUnitOfWork
}

func (r *memoryRates) matching(opts portsrepo.RateQueryOptions) []domain.ExchangeRate {
	store := r.uow.store
	store.reads++
	var out []domain.ExchangeRate
	for _, rate := range store.rates {
		if opts.Filter.ExchangeRateID != nil && rate.ExchangeRateID != *opts.Filter.ExchangeRateID {
			continue
		}
		if code := opts.Filter.FromCurrencyCode; code != "" && store.currencies[code].CurrencyID != rate.FromCurrencyID {
			continue
		}
		if code := opts.Filter.ToCurrencyCode; code != "" && store.currencies[code].CurrencyID != rate.ToCurrencyID {
			continue
		}
		out = append(out, store.withIncludes(rate, opts.Include))
	}
	less := func(a, b domain.ExchangeRate) bool {
		switch opts.OrderBy {
		case portsrepo.OrderByFromCurrency:
			if a.FromCurrencyID != b.FromCurrencyID {
				return a.FromCurrencyID < b.FromCurrencyID
			}
		case portsrepo.OrderByLastRefreshed:
			if !a.LastRefreshed.Equal(b.LastRefreshed) {
				return a.LastRefreshed.Before(b.LastRefreshed)
			}
		}
		return a.ExchangeRateID < b.ExchangeRateID
	}
	sort.SliceStable(out, func(i, j int) bool {
		if opts.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func (r *memoryRates) GetByID(ctx context.Context, rateID int64) (*domain.ExchangeRate, error) {
	rates := r.matching(portsrepo.RateQueryOptions{Filter: portsrepo.RateFilter{ExchangeRateID: &rateID}})
	if len(rates) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("exchange rate with ID %d not found", rateID))
	}
	return &rates[0], nil
}

func (r *memoryRates) GetAll(ctx context.Context) ([]domain.ExchangeRate, error) {
	return r.matching(portsrepo.RateQueryOptions{}), nil
}

func (r *memoryRates) GetAllWithCurrencyDetails(ctx context.Context) ([]domain.ExchangeRate, error) {
	return r.matching(portsrepo.RateQueryOptions{Include: portsrepo.IncludeCurrencies}), nil
}

func (r *memoryRates) FindFirst(ctx context.Context, opts portsrepo.RateQueryOptions) (*domain.ExchangeRate, error) {
	rates := r.matching(opts)
	if len(rates) == 0 {
		return nil, apperrors.NewNotFoundError("exchange rate not found")
	}
	return &rates[0], nil
}

func (r *memoryRates) FindLatest(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	return r.FindFirst(ctx, portsrepo.RateQueryOptions{
		Filter:     portsrepo.RateFilter{FromCurrencyCode: fromCurrencyCode, ToCurrencyCode: toCurrencyCode},
		Include:    portsrepo.IncludeCurrencies,
		OrderBy:    portsrepo.OrderByLastRefreshed,
		Descending: true,
	})
}

func (r *memoryRates) Paginate(ctx context.Context, pageIndex, pageSize int, opts portsrepo.RateQueryOptions) (domain.Page[domain.ExchangeRate], error) {
	if err := pagination.Validate(pageIndex, pageSize); err != nil {
		return domain.Page[domain.ExchangeRate]{}, err
	}
	rates := r.matching(opts)
	if pagination.PastEnd(pageIndex, pageSize, len(rates)) {
		return domain.NewPage[domain.ExchangeRate](nil, len(rates), pageIndex, pageSize), nil
	}
	start := pagination.Offset(pageIndex, pageSize)
	end := min(start+pageSize, len(rates))
	return domain.NewPage(rates[start:end], len(rates), pageIndex, pageSize), nil
}

func (r *memoryRates) Add(rate *domain.ExchangeRate) {
	r.uow.pending = append(r.uow.pending, func(rates *[]domain.ExchangeRate, nextID *int64) error {
		*nextID++
		rate.ExchangeRateID = *nextID
		stored := *rate
		stored.FromCurrency, stored.ToCurrency = nil, nil
		*rates = append(*rates, stored)
		return nil
	})
}

func (r *memoryRates) Update(rate *domain.ExchangeRate) {
	r.uow.pending = append(r.uow.pending, func(rates *[]domain.ExchangeRate, nextID *int64) error {
		for i := range *rates {
			if (*rates)[i].ExchangeRateID == rate.ExchangeRateID {
				stored := *rate
				stored.FromCurrency, stored.ToCurrency = nil, nil
				(*rates)[i] = stored
				return nil
			}
		}
		return apperrors.NewNotFoundError(fmt.Sprintf("exchange rate with ID %d not found", rate.ExchangeRateID))
	})
}

func (r *memoryRates) Delete(rate *domain.ExchangeRate) {
	rateID := rate.ExchangeRateID
	r.uow.pending = append(r.uow.pending, func(rates *[]domain.ExchangeRate, nextID *int64) error {
		for i := range *rates {
			if (*rates)[i].ExchangeRateID == rateID {
				*rates = append((*rates)[:i], (*rates)[i+1:]...)
				return nil
			}
		}
		return apperrors.NewNotFoundError(fmt.Sprintf("exchange rate with ID %d not found", rateID))
	})
}
