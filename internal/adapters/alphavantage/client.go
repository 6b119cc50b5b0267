package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/fxrates_backend/internal/apperrors"
	"github.com/SscSPs/fxrates_backend/internal/core/domain"
	portssvc "github.com/SscSPs/fxrates_backend/internal/core/ports/services"
	"github.com/SscSPs/fxrates_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is the CURRENCY_EXCHANGE_RATE endpoint; pair and key are appended as query parameters.
	DefaultBaseURL = "https://www.alphavantage.co/query?function=CURRENCY_EXCHANGE_RATE"

	lastRefreshedLayout = "2006-01-02 15:04:05"
	notAvailable        = "N/A"
	maxErrorBodyBytes   = 512
)

// Client implements portssvc.RateProvider against the Alpha Vantage API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ portssvc.RateProvider = (*Client)(nil)

// NewClient creates a provider client. A nil httpClient gets one with the given timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type exchangeRateEnvelope struct {
	Quote *quotePayload `json:"Realtime Currency Exchange Rate"`
}

type quotePayload struct {
	FromCurrencyCode string `json:"1. From_Currency Code"`
	FromCurrencyName string `json:"2. From_Currency Name"`
	ToCurrencyCode   string `json:"3. To_Currency Code"`
	ToCurrencyName   string `json:"4. To_Currency Name"`
	ExchangeRate     string `json:"5. Exchange Rate"`
	LastRefreshed    string `json:"6. Last Refreshed"`
	TimeZone         string `json:"7. Time Zone"`
	BidPrice         string `json:"8. Bid Price"`
	AskPrice         string `json:"9. Ask Price"`
}

func (c *Client) requestURL(fromCurrency, toCurrency string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid provider url: %w", err)
	}
	q := u.Query()
	q.Set("from_currency", fromCurrency)
	q.Set("to_currency", toCurrency)
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// GetExchangeRate fetches the realtime quote for a pair.
func (c *Client) GetExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.RateQuote, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrencyCode))
	to := strings.ToUpper(strings.TrimSpace(toCurrencyCode))
	if from == "" || to == "" {
		return nil, apperrors.NewValidationError("both currency codes are required")
	}
	if from == to {
		return nil, apperrors.NewValidationError(fmt.Sprintf("from and to currencies cannot be the same: %s", from))
	}

	reqURL, err := c.requestURL(from, to)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to build provider request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to build provider request", err)
	}
	req.Header.Set("Accept", "application/json")

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Debug("Requesting exchange rate from provider", slog.String("from_currency", from), slog.String("to_currency", to))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("provider request for %s/%s failed", from, to), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("Failed to close provider response body", slog.String("error", closeErr.Error()))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("provider returned status %d for %s/%s", resp.StatusCode, from, to),
			fmt.Errorf("response body: %s", strings.TrimSpace(string(body))),
		)
	}

	var envelope exchangeRateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode provider response", err)
	}
	if envelope.Quote == nil {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("provider returned no quote for %s/%s", from, to), nil)
	}
	return envelope.Quote.toDomain(), nil
}

func (p *quotePayload) toDomain() *domain.RateQuote {
	return &domain.RateQuote{
		FromCurrencyCode: orNotAvailable(p.FromCurrencyCode),
		FromCurrencyName: orNotAvailable(p.FromCurrencyName),
		ToCurrencyCode:   orNotAvailable(p.ToCurrencyCode),
		ToCurrencyName:   orNotAvailable(p.ToCurrencyName),
		Rate:             parseDecimal(p.ExchangeRate),
		BidPrice:         parseDecimal(p.BidPrice),
		AskPrice:         parseDecimal(p.AskPrice),
		LastRefreshed:    parseLastRefreshed(p.LastRefreshed),
		TimeZone:         orNotAvailable(p.TimeZone),
	}
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// parseDecimal yields zero for missing or malformed numbers.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseLastRefreshed reads the provider timestamp as UTC, or the zero time if malformed.
func parseLastRefreshed(s string) time.Time {
	t, err := time.ParseInLocation(lastRefreshedLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
