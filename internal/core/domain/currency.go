package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyID int64  `json:"currencyID"`
	Code       string `json:"code"` // Unique 3-letter code (e.g., "USD")
	Name       string `json:"name"` // e.g., "United States Dollar"
}
