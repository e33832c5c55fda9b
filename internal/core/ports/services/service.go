package services

// ServiceContainer groups the service facades handed to the HTTP layer.
type ServiceContainer struct {
	ExchangeRate ExchangeRateSvcFacade
	Reporting    ReportingSvcFacade
}
