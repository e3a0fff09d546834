package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/soundvault/vsdwallet/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entry := &domain.LedgerEntry{
		AccountID:     10,
		Amount:        100,
		Kind:          "deposit",
		Details:       "Initial sign-up reward",
		BalanceBefore: 0,
		BalanceAfter:  100,
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Inserts entry and returns stored row",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "amount", "kind", "details", "balance_before", "balance_after", "created_at"}).
					AddRow(1, 10, int64(100), "deposit", "Initial sign-up reward", int64(0), int64(100), createdAt)
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_entries (account_id, amount, kind, details, balance_before, balance_after) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, account_id, amount, kind, details, balance_before, balance_after, created_at`)).
					WithArgs(10, int64(100), "deposit", "Initial sign-up reward", int64(0), int64(100)).
					WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_entries (account_id, amount, kind, details, balance_before, balance_after) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, account_id, amount, kind, details, balance_before, balance_after, created_at`)).
					WithArgs(10, int64(100), "deposit", "Initial sign-up reward", int64(0), int64(100)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			created, err := repo.Insert(context.Background(), entry)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, created.ID)
				assert.Equal(t, createdAt, created.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByAccountID(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Returns entries newest first",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "amount", "kind", "details", "balance_before", "balance_after", "created_at"}).
					AddRow(2, 10, int64(-30), "purchase", `Purchase of track "Neon Skyline"`, int64(100), int64(70), createdAt.Add(time.Hour)).
					AddRow(1, 10, int64(100), "deposit", "Initial sign-up reward", int64(0), int64(100), createdAt)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, account_id, amount, kind, details, balance_before, balance_after, created_at FROM ledger_entries WHERE account_id = $1 ORDER BY created_at DESC, id DESC`)).
					WithArgs(10).
					WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "No entries returns empty slice",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "amount", "kind", "details", "balance_before", "balance_after", "created_at"})
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, account_id, amount, kind, details, balance_before, balance_after, created_at FROM ledger_entries WHERE account_id = $1 ORDER BY created_at DESC, id DESC`)).
					WithArgs(10).
					WillReturnRows(rows)
			},
			count: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, account_id, amount, kind, details, balance_before, balance_after, created_at FROM ledger_entries WHERE account_id = $1 ORDER BY created_at DESC, id DESC`)).
					WithArgs(10).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			entries, err := repo.FindByAccountID(context.Background(), 10)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, entries, tt.count)
				if tt.count == 2 {
					assert.Equal(t, 2, entries[0].ID)
					assert.Equal(t, 1, entries[1].ID)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SumByAccountID(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		sum       int64
	}{
		{
			name: "Sums all amounts",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(70))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE account_id = $1`)).
					WithArgs(10).
					WillReturnRows(rows)
			},
			sum: 70,
		},
		{
			name: "No entries sums to zero",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE account_id = $1`)).
					WithArgs(10).
					WillReturnRows(rows)
			},
			sum: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE account_id = $1`)).
					WithArgs(10).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			sum, err := repo.SumByAccountID(context.Background(), 10)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.sum, sum)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
