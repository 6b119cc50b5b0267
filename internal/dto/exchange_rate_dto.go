package dto

import (
	"time"

	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,alpha"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,alpha"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	BidPrice         decimal.Decimal `json:"bidPrice"`
	AskPrice         decimal.Decimal `json:"askPrice"`
	TimeZone         string          `json:"timeZone" binding:"max=64"`
}

// UpdateExchangeRateRequest defines the structure for overwriting an existing exchange rate.
type UpdateExchangeRateRequest struct {
	ExchangeRateID   int64           `json:"id" binding:"required,gt=0"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,alpha"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,alpha"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	BidPrice         decimal.Decimal `json:"bidPrice"`
	AskPrice         decimal.Decimal `json:"askPrice"`
	TimeZone         string          `json:"timeZone" binding:"max=64"`
}

// ExchangeRateResponse is the externally visible view of a stored exchange rate.
// It is also the payload of new-rate events.
type ExchangeRateResponse struct {
	ExchangeRateID   int64           `json:"id"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	FromCurrencyName string          `json:"fromCurrencyName"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	ToCurrencyName   string          `json:"toCurrencyName"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	BidPrice         decimal.Decimal `json:"bidPrice"`
	AskPrice         decimal.Decimal `json:"askPrice"`
	LastRefreshed    time.Time       `json:"lastRefreshed"`
	TimeZone         string          `json:"timeZone"`
}

// ListExchangeRatesResponse is a page of exchange rate views.
type ListExchangeRatesResponse struct {
	Items      []ExchangeRateResponse `json:"items"`
	TotalCount int                    `json:"totalCount"`
	PageIndex  int                    `json:"pageIndex"`
	PageSize   int                    `json:"pageSize"`
	TotalPages int                    `json:"totalPages"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO.
// Currency codes and names are empty when the references were not loaded.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	resp := ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		ExchangeRate:   rate.Rate,
		BidPrice:       rate.BidPrice,
		AskPrice:       rate.AskPrice,
		LastRefreshed:  rate.LastRefreshed,
		TimeZone:       rate.TimeZone,
	}
	if rate.FromCurrency != nil {
		resp.FromCurrencyCode = rate.FromCurrency.Code
		resp.FromCurrencyName = rate.FromCurrency.Name
	}
	if rate.ToCurrency != nil {
		resp.ToCurrencyCode = rate.ToCurrency.Code
		resp.ToCurrencyName = rate.ToCurrency.Name
	}
	return resp
}

// ToListExchangeRatesResponse converts a page of domain rates to its DTO.
func ToListExchangeRatesResponse(page domain.Page[domain.ExchangeRate]) *ListExchangeRatesResponse {
	views := domain.MapPage(page, func(rate domain.ExchangeRate) ExchangeRateResponse {
		return ToExchangeRateResponse(&rate)
	})
	return &ListExchangeRatesResponse{
		Items:      views.Items,
		TotalCount: views.TotalCount,
		PageIndex:  views.PageIndex,
		PageSize:   views.PageSize,
		TotalPages: views.TotalPages(),
	}
}

// EventKey groups events for the same currency pair.
func (r ExchangeRateResponse) EventKey() string {
	return r.FromCurrencyCode + "/" + r.ToCurrencyCode
}
