package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rates table.
type ExchangeRate struct {
	ExchangeRateID int64           `json:"exchangeRateID"` // Primary Key
	FromCurrencyID int64           `json:"fromCurrencyID"` // FK -> currencies.id
	ToCurrencyID   int64           `json:"toCurrencyID"`   // FK -> currencies.id
	BidPrice       decimal.Decimal `json:"bidPrice"`
	AskPrice       decimal.Decimal `json:"askPrice"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	LastRefreshed  time.Time       `json:"lastRefreshed"`
	TimeZone       string          `json:"timeZone"`
}
