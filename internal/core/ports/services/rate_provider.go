package services

import (
	"context"

	"github.com/SscSPs/fxrates_backend/internal/core/domain"
)

// RateProvider fetches a point-in-time quote for a currency pair from an external source.
type RateProvider interface {
	GetExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.RateQuote, error)
}

// EventPublisher delivers payloads to a topic on a best-effort basis.
// Failures are logged by the publisher and never reported to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any)
}
