package service

import (
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/config"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/ingest/apisource"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/ledger"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/rates"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/repo"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service/commission"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service/recon"
)

type Services struct {
	ReconService *recon.Service
}

func New(cfg *config.Config, repos *repo.Repositories, ledgerClient *ledger.Client) *Services {
	engine := commission.New(cfg.FeeShare, commission.TipsReported)
	source := apisource.New(ledgerClient)
	loadRates := func() (*rates.Table, error) {
		return rates.Load(cfg.RatesFile)
	}

	reconService := recon.New(
		source, ledgerClient, repos.RowRepo, repos.StateRepo,
		engine, loadRates, cfg.DefaultRate, cfg.Lookback, cfg.SyncInterval,
	)

	return &Services{
		ReconService: reconService,
	}
}
