package services

import (
	portsrepo "github.com/rahmannascenia/accountingbolt/internal/core/ports/repositories"
	portssvc "github.com/rahmannascenia/accountingbolt/internal/core/ports/services"
	"github.com/rahmannascenia/accountingbolt/internal/platform/config"
)

// NewServiceContainer wires the repositories and configuration into the
// service facades handed to the HTTP layer.
func NewServiceContainer(repos *portsrepo.RepositoryContainer, cfg *config.AppConfig) *portssvc.ServiceContainer {
	engine := NewRevaluationEngine(RevaluationConfig{
		ReportingCurrency: cfg.ReportingCurrency,
		GainAccountCode:   cfg.FxGainAccountCode,
		GainAccountName:   cfg.FxGainAccountName,
		LossAccountCode:   cfg.FxLossAccountCode,
		LossAccountName:   cfg.FxLossAccountName,
	})

	return &portssvc.ServiceContainer{
		ExchangeRate: NewExchangeRateService(repos.ExchangeRate),
		Reporting:    NewReportingService(repos.Ledger, engine),
	}
}
