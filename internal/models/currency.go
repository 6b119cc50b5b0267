package models

// Currency is a row of the currencies table.
type Currency struct {
	CurrencyID int64  `json:"currencyID"` // Primary Key
	Code       string `json:"code"`       // Unique, e.g. "USD"
	Name       string `json:"name"`
}
