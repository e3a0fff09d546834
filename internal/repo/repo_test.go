package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	accountrepo "github.com/soundvault/vsdwallet/internal/repo/account-repo"
	ledgerrepo "github.com/soundvault/vsdwallet/internal/repo/ledger-repo"
	reportrepo "github.com/soundvault/vsdwallet/internal/repo/report-repo"
	trackrepo "github.com/soundvault/vsdwallet/internal/repo/track-repo"
	userrepo "github.com/soundvault/vsdwallet/internal/repo/user-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.AccountRepo)
	assert.NotNil(t, repo.LedgerRepo)
	assert.NotNil(t, repo.TrackRepo)
	assert.NotNil(t, repo.ReportRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &accountrepo.Repository{}, repo.AccountRepo)
	assert.IsType(t, &ledgerrepo.Repository{}, repo.LedgerRepo)
	assert.IsType(t, &trackrepo.Repository{}, repo.TrackRepo)
	assert.IsType(t, &reportrepo.Repository{}, repo.ReportRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
