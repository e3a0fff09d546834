package accountrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
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

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        SELECT id, user_id, balance, last_daily_claim
        FROM accounts
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)

	var account domain.Account
	err := row.Scan(&account.ID, &account.UserID, &account.Balance, &account.LastDailyClaim)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *Repository) Create(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        INSERT INTO accounts (user_id, balance, last_daily_claim)
        VALUES ($1, 0, NULL)
        RETURNING id, user_id, balance, last_daily_claim
    `
	row := r.db.QueryRow(ctx, query, userID)

	var account domain.Account
	err := row.Scan(&account.ID, &account.UserID, &account.Balance, &account.LastDailyClaim)
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// UpdateBalance performs a compare-and-swap on the account balance. It
// writes the new balance only when the stored balance still equals the one
// read by the caller and reports whether the swap took place.
func (r *Repository) UpdateBalance(ctx context.Context, accountID int, before, after int64) (bool, error) {
	query := `
        UPDATE accounts
        SET balance = $1
        WHERE id = $2 AND balance = $3
    `
	tag, err := r.db.Exec(ctx, query, after, accountID, before)
	if err != nil {
		zap.L().Error("failed to update account balance", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetDailyClaim marks the daily reward as claimed for the given calendar
// date. The swap fails when the stored date already equals day, which is how
// concurrent claims on the same day lose the race.
func (r *Repository) SetDailyClaim(ctx context.Context, accountID int, day string) (bool, error) {
	query := `
        UPDATE accounts
        SET last_daily_claim = $1
        WHERE id = $2 AND last_daily_claim IS DISTINCT FROM $1
    `
	tag, err := r.db.Exec(ctx, query, day, accountID)
	if err != nil {
		zap.L().Error("failed to set daily claim date", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
