package mapping

import (
	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	"github.com/SscSPs/fxrates_backend/internal/models"
)

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID: m.CurrencyID,
		Code:       m.Code,
		Name:       m.Name,
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	if ms == nil {
		return []domain.Currency{}
	}
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
