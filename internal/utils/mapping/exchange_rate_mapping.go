package mapping

import (
	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	"github.com/SscSPs/fxrates_backend/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		FromCurrencyID: d.FromCurrencyID,
		ToCurrencyID:   d.ToCurrencyID,
		BidPrice:       d.BidPrice,
		AskPrice:       d.AskPrice,
		ExchangeRate:   d.Rate,
		LastRefreshed:  d.LastRefreshed,
		TimeZone:       d.TimeZone,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate.
// Currency references are left unset; the repository attaches them when eager-loaded.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		FromCurrencyID: m.FromCurrencyID,
		ToCurrencyID:   m.ToCurrencyID,
		BidPrice:       m.BidPrice,
		AskPrice:       m.AskPrice,
		Rate:           m.ExchangeRate,
		LastRefreshed:  m.LastRefreshed,
		TimeZone:       m.TimeZone,
	}
}
