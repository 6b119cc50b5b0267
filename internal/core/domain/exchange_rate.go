package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a stored quote between two currencies.
// FromCurrency and ToCurrency are only populated when eager-loaded.
type ExchangeRate struct {
	ExchangeRateID int64
	FromCurrencyID int64
	ToCurrencyID   int64
	BidPrice       decimal.Decimal
	AskPrice       decimal.Decimal
	Rate           decimal.Decimal
	LastRefreshed  time.Time
	TimeZone       string

	FromCurrency *Currency
	ToCurrency   *Currency
}

// RateQuote is a point-in-time quote returned by an external rate provider.
type RateQuote struct {
	FromCurrencyCode string
	FromCurrencyName string
	ToCurrencyCode   string
	ToCurrencyName   string
	Rate             decimal.Decimal
	BidPrice         decimal.Decimal
	AskPrice         decimal.Decimal
	LastRefreshed    time.Time
	TimeZone         string
}
