package services

import (
	portsrepo "github.com/SscSPs/fxrates_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fxrates_backend/internal/core/ports/services"
	"github.com/SscSPs/fxrates_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, uowFactory portsrepo.UnitOfWorkFactory, provider portssvc.RateProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Currency: NewCurrencyService(uowFactory),
		ExchangeRate: NewExchangeRateService(uowFactory, provider,
			WithEventPublisher(publisher, PublishSettings{
				Enabled: cfg.KafkaEnabled,
				Topic:   cfg.KafkaAddNewRateTopic,
			}),
		),
	}
}
