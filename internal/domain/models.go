package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Account is a user's VSD wallet. Balance is kept in the smallest token
// denomination and never goes negative after a committed transaction.
// LastDailyClaim is the calendar date (YYYY-MM-DD) of the most recent
// successful daily reward claim, nil if never claimed.
type Account struct {
	ID             int     `db:"id"`
	UserID         int     `db:"user_id"`
	Balance        int64   `db:"balance"`
	LastDailyClaim *string `db:"last_daily_claim"`
}

// LedgerEntry is an immutable audit record of one balance-affecting
// operation. BalanceAfter = BalanceBefore + Amount always holds.
type LedgerEntry struct {
	ID            int       `db:"id"`
	AccountID     int       `db:"account_id"`
	Amount        int64     `db:"amount"`
	Kind          string    `db:"kind"`
	Details       string    `db:"details"`
	BalanceBefore int64     `db:"balance_before"`
	BalanceAfter  int64     `db:"balance_after"`
	CreatedAt     time.Time `db:"created_at"`
}

type Track struct {
	ID         int       `db:"id"`
	ArtistID   int       `db:"artist_id"`
	Title      string    `db:"title"`
	Genre      string    `db:"genre"`
	Price      int64     `db:"price"`
	Plays      int       `db:"plays"`
	UploadedAt time.Time `db:"uploaded_at"`
}

type Report struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Status      string    `db:"status"`
	Fee         int64     `db:"fee"`
	Body        string    `db:"body"`
	RequestedAt time.Time `db:"requested_at"`
}
