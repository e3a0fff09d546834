package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/soundvault/vsdwallet/internal/config"
	"github.com/soundvault/vsdwallet/internal/pg"
	"github.com/soundvault/vsdwallet/internal/repo"
	"github.com/soundvault/vsdwallet/internal/service/authservice"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
	"github.com/soundvault/vsdwallet/internal/service/reportservice"
	"github.com/soundvault/vsdwallet/internal/service/trackservice"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := authservice.NewMockRepo(ctrl)
	mockAccountRepo := ledgerservice.NewMockAccountRepo(ctrl)
	mockLedgerRepo := ledgerservice.NewMockLedgerRepo(ctrl)
	mockTrackRepo := trackservice.NewMockRepo(ctrl)
	mockReportRepo := reportservice.NewMockRepo(ctrl)
	mockCache := ledgerservice.NewMockBalanceCache(ctrl)
	mockTxManager := pg.NewMockTXManager(ctrl)

	repos := &repo.Repositories{
		UserRepo:    mockUserRepo,
		AccountRepo: mockAccountRepo,
		LedgerRepo:  mockLedgerRepo,
		TrackRepo:   mockTrackRepo,
		ReportRepo:  mockReportRepo,
	}

	cfg := &config.Config{SignupBonus: 10, ReportFee: 25}
	services := New(repos, mockCache, mockTxManager, cfg)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.LedgerService)
	assert.NotNil(t, services.TrackService)
	assert.NotNil(t, services.ReportService)
	assert.NotNil(t, services.Ledger)
}
