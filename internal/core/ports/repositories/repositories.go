package repositories

// RepositoryProvider exposes the repositories bound to a unit of work's session.
type RepositoryProvider interface {
	Currencies() CurrencyReader
	ExchangeRates() ExchangeRateRepositoryFacade
}
