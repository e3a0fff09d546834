package service

import (
	"github.com/soundvault/vsdwallet/internal/handlers/auth"
	"github.com/soundvault/vsdwallet/internal/handlers/reports"
	"github.com/soundvault/vsdwallet/internal/handlers/tracks"
	"github.com/soundvault/vsdwallet/internal/handlers/wallet"

	pkgauth "github.com/soundvault/vsdwallet/pkg/auth"

	"github.com/soundvault/vsdwallet/internal/config"
	"github.com/soundvault/vsdwallet/internal/pg"
	"github.com/soundvault/vsdwallet/internal/repo"
	reportsworker "github.com/soundvault/vsdwallet/internal/reports"
	authservice "github.com/soundvault/vsdwallet/internal/service/authservice"
	ledgerservice "github.com/soundvault/vsdwallet/internal/service/ledgerservice"
	reportservice "github.com/soundvault/vsdwallet/internal/service/reportservice"
	trackservice "github.com/soundvault/vsdwallet/internal/service/trackservice"
)

type Services struct {
	AuthService   auth.Service
	LedgerService wallet.Service
	TrackService  tracks.Service
	ReportService reports.Service

	// Ledger gives the background reports worker write access to the
	// wallet without widening the HTTP-facing interface.
	Ledger reportsworker.Ledger
}

func New(repo *repo.Repositories, cache ledgerservice.BalanceCache, txManager pg.TXManager, cfg *config.Config) *Services {
	ledgerService := ledgerservice.New(repo.AccountRepo, repo.LedgerRepo, cache, txManager)
	trackService := trackservice.New(repo.TrackRepo, ledgerService)
	authService := authservice.New(repo.UserRepo, ledgerService, &pkgauth.HashService{}, &pkgauth.JWTService{}, cfg.SignupBonus)
	reportService := reportservice.New(repo.ReportRepo, repo.TrackRepo, ledgerService, cfg.ReportFee)

	return &Services{
		AuthService:   authService,
		LedgerService: ledgerService,
		TrackService:  trackService,
		ReportService: reportService,
		Ledger:        ledgerService,
	}
}
