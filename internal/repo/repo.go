package repo

import (
	"github.com/soundvault/vsdwallet/internal/pg"
	accountrepo "github.com/soundvault/vsdwallet/internal/repo/account-repo"
	ledgerrepo "github.com/soundvault/vsdwallet/internal/repo/ledger-repo"
	reportrepo "github.com/soundvault/vsdwallet/internal/repo/report-repo"
	trackrepo "github.com/soundvault/vsdwallet/internal/repo/track-repo"
	userrepo "github.com/soundvault/vsdwallet/internal/repo/user-repo"
	"github.com/soundvault/vsdwallet/internal/service/authservice"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
	"github.com/soundvault/vsdwallet/internal/service/reportservice"
	"github.com/soundvault/vsdwallet/internal/service/trackservice"
)

type Repositories struct {
	UserRepo    authservice.Repo
	AccountRepo ledgerservice.AccountRepo
	LedgerRepo  ledgerservice.LedgerRepo
	TrackRepo   trackservice.Repo
	ReportRepo  reportservice.Repo
}

func New(conn pg.Database) *Repositories {
	userRepo := userrepo.New(conn)
	accountRepo := accountrepo.New(conn)
	ledgerRepo := ledgerrepo.New(conn)
	trackRepo := trackrepo.New(conn)
	reportRepo := reportrepo.New(conn)

	return &Repositories{
		UserRepo:    userRepo,
		AccountRepo: accountRepo,
		LedgerRepo:  ledgerRepo,
		TrackRepo:   trackRepo,
		ReportRepo:  reportRepo,
	}
}
