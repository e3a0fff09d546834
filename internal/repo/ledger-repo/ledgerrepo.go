package ledgerrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

// Insert appends one audit record. Entries are never updated or deleted
// afterwards; the created_at timestamp is assigned by the database.
func (r *Repository) Insert(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	query := `
        INSERT INTO ledger_entries (account_id, amount, kind, details, balance_before, balance_after)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, account_id, amount, kind, details, balance_before, balance_after, created_at
    `
	row := r.db.QueryRow(ctx, query,
		entry.AccountID, entry.Amount, entry.Kind, entry.Details, entry.BalanceBefore, entry.BalanceAfter)

	var created domain.LedgerEntry
	err := row.Scan(&created.ID, &created.AccountID, &created.Amount, &created.Kind,
		&created.Details, &created.BalanceBefore, &created.BalanceAfter, &created.CreatedAt)
	if err != nil {
		zap.L().Error("failed to insert ledger entry", zap.Error(err))
		return nil, err
	}
	return &created, nil
}

func (r *Repository) FindByAccountID(ctx context.Context, accountID int) ([]domain.LedgerEntry, error) {
	query := `
        SELECT id, account_id, amount, kind, details, balance_before, balance_after, created_at
        FROM ledger_entries
        WHERE account_id = $1
        ORDER BY created_at DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("failed to get ledger entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		err := rows.Scan(&entry.ID, &entry.AccountID, &entry.Amount, &entry.Kind,
			&entry.Details, &entry.BalanceBefore, &entry.BalanceAfter, &entry.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SumByAccountID reconstructs the balance from the audit trail. Used by the
// reconciliation check: the result must equal the denormalized balance on
// the account row.
func (r *Repository) SumByAccountID(ctx context.Context, accountID int) (int64, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM ledger_entries
        WHERE account_id = $1
    `
	row := r.db.QueryRow(ctx, query, accountID)

	var sum int64
	if err := row.Scan(&sum); err != nil {
		zap.L().Error("failed to sum ledger entries", zap.Error(err))
		return 0, err
	}
	return sum, nil
}
