package services

// ServiceContainer holds instances of all the application services.
// It is used by the handlers to reach service functionality.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
}
