package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fxrates_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fxrates_backend/internal/core/ports/services"
)

type currencyService struct {
	BaseService
	uowFactory portsrepo.UnitOfWorkFactory
}

// NewCurrencyService creates the read-only currency catalog service.
func NewCurrencyService(uowFactory portsrepo.UnitOfWorkFactory) portssvc.CurrencySvcFacade {
	return &currencyService{uowFactory: uowFactory}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	currency, err := s.uowFactory.NewUnitOfWork().Currencies().GetByCode(ctx, code)
	if err != nil {
		s.LogDebug(ctx, "Currency lookup failed", slog.String("currency_code", code), slog.String("error", err.Error()))
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.uowFactory.NewUnitOfWork().Currencies().ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, err
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
