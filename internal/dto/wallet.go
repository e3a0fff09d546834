package dto

import "time"

type BalanceResponseDTO struct {
	Balance int64 `json:"balance" example:"500"`
}

type GetTransactionsResponseDTO struct {
	Amount        int64     `json:"amount" example:"-25"`
	Kind          string    `json:"kind" example:"service_fee"`
	Details       string    `json:"details" example:"AI performance report generation"`
	BalanceBefore int64     `json:"balance_before" example:"500"`
	BalanceAfter  int64     `json:"balance_after" example:"475"`
	CreatedAt     time.Time `json:"created_at" example:"2020-12-09T16:09:57+03:00"`
}

type ClaimDailyResponseDTO struct {
	Claimed bool   `json:"claimed" example:"true"`
	Message string `json:"message" example:"You have successfully claimed 5 VSD-lite credits!"`
}

type AuditResponseDTO struct {
	Balance    int64 `json:"balance" example:"500"`
	LedgerSum  int64 `json:"ledger_sum" example:"500"`
	Consistent bool  `json:"consistent" example:"true"`
}
