package ledgerservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/pg"
)

type AccountRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Account, error)
	Create(ctx context.Context, userID int) (*domain.Account, error)
	UpdateBalance(ctx context.Context, accountID int, before, after int64) (bool, error)
	SetDailyClaim(ctx context.Context, accountID int, day string) (bool, error)
}

type LedgerRepo interface {
	Insert(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	FindByAccountID(ctx context.Context, accountID int) ([]domain.LedgerEntry, error)
	SumByAccountID(ctx context.Context, accountID int) (int64, error)
}

// BalanceCache serves wallet views only. Debit and credit decisions never
// read it: every Apply re-reads the authoritative balance inside its own
// transaction.
type BalanceCache interface {
	Get(ctx context.Context, userID int) (int64, bool, error)
	Set(ctx context.Context, userID int, balance int64) error
	Invalidate(ctx context.Context, userID int) error
}

// Transaction kinds recorded in the ledger.
const (
	KindDeposit    string = "deposit"
	KindWithdrawal string = "withdrawal"
	KindServiceFee string = "service_fee"
	KindPurchase   string = "purchase"
	KindSale       string = "sale"
	KindReward     string = "reward"
)

const (
	maxRetries    = 3
	retryInterval = time.Millisecond * 50
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrStoreUnavailable    = errors.New("store unavailable, try again later")

	errBalanceConflict = errors.New("balance changed by concurrent writer")
)

type Service struct {
	accountRepo AccountRepo
	ledgerRepo  LedgerRepo
	cache       BalanceCache
	txManager   pg.TXManager
}

func New(accountRepo AccountRepo, ledgerRepo LedgerRepo, cache BalanceCache, txManager pg.TXManager) *Service {
	return &Service{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		cache:       cache,
		txManager:   txManager,
	}
}

func (s *Service) CreateAccount(ctx context.Context, userID int) (*domain.Account, error) {
	account, err := s.accountRepo.Create(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

// Apply commits one signed balance change together with its audit entry, or
// neither. The balance write is a compare-and-swap: a concurrent writer
// makes the swap miss, the transaction rolls back and the whole
// read-compute-write cycle is retried with a growing backoff. Exhausting
// the retries returns ErrStoreUnavailable and the caller may retry the
// operation as a whole.
func (s *Service) Apply(ctx context.Context, userID int, amount int64, kind, details string) (int64, error) {
	var newBalance int64

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.txManager.Begin(ctx, func(ctx context.Context) error {
			account, err := s.accountRepo.GetByUserID(ctx, userID)
			if err != nil {
				return err
			}
			if account == nil {
				return ErrAccountNotFound
			}

			before := account.Balance
			after := before + amount
			if after < 0 {
				return ErrInsufficientBalance
			}

			swapped, err := s.accountRepo.UpdateBalance(ctx, account.ID, before, after)
			if err != nil {
				return err
			}
			if !swapped {
				return errBalanceConflict
			}

			if _, err := s.ledgerRepo.Insert(ctx, &domain.LedgerEntry{
				AccountID:     account.ID,
				Amount:        amount,
				Kind:          kind,
				Details:       details,
				BalanceBefore: before,
				BalanceAfter:  after,
			}); err != nil {
				return err
			}

			newBalance = after
			return nil
		})

		if err == nil {
			s.invalidate(ctx, userID)
			return newBalance, nil
		}
		if errors.Is(err, errBalanceConflict) {
			zap.L().Warn("balance conflict, retrying",
				zap.Int("userID", userID), zap.Int("attempt", attempt))
			time.Sleep(retryInterval * time.Duration(attempt))
			continue
		}
		if !errors.Is(err, ErrAccountNotFound) && !errors.Is(err, ErrInsufficientBalance) {
			zap.L().Error("failed to apply transaction", zap.Int("userID", userID), zap.Error(err))
		}
		return 0, err
	}

	zap.L().Error("transaction retries exhausted", zap.Int("userID", userID))
	return 0, ErrStoreUnavailable
}

// ClaimDaily grants the fixed daily reward at most once per calendar day.
// The claim flag is checked and set in its own transaction so concurrent
// claims for the same day see exactly one winner; the reward credit then
// goes through Apply so it lands in the ledger like every other mutation.
func (s *Service) ClaimDaily(ctx context.Context, userID int, today string, reward int64) (bool, error) {
	var claimed bool

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}
		if account.LastDailyClaim != nil && *account.LastDailyClaim == today {
			return nil
		}

		swapped, err := s.accountRepo.SetDailyClaim(ctx, account.ID, today)
		if err != nil {
			return err
		}
		claimed = swapped
		return nil
	})
	if err != nil {
		zap.L().Error("failed to claim daily reward", zap.Int("userID", userID), zap.Error(err))
		return false, err
	}
	if !claimed {
		return false, nil
	}

	if _, err := s.Apply(ctx, userID, reward, KindReward, "Daily credits claim"); err != nil {
		// The claim flag is already committed but the credit is not
		// recorded. Needs manual intervention, hence the incident log.
		zap.L().Error("reconciliation incident: daily claim marked but credit not recorded",
			zap.Int("userID", userID), zap.Int64("reward", reward), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (s *Service) GetBalance(ctx context.Context, userID int) (int64, error) {
	if balance, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
		return balance, nil
	}

	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return 0, err
	}
	if account == nil {
		return 0, ErrAccountNotFound
	}

	if err := s.cache.Set(ctx, userID, account.Balance); err != nil {
		zap.L().Warn("failed to cache balance", zap.Int("userID", userID), zap.Error(err))
	}
	return account.Balance, nil
}

func (s *Service) History(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account for history", zap.Error(err))
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	entries, err := s.ledgerRepo.FindByAccountID(ctx, account.ID)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// Audit compares the denormalized balance with the sum of all ledger
// entries for the account. The two must always be equal.
func (s *Service) Audit(ctx context.Context, userID int) (balance, ledgerSum int64, err error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account for audit", zap.Error(err))
		return 0, 0, err
	}
	if account == nil {
		return 0, 0, ErrAccountNotFound
	}

	sum, err := s.ledgerRepo.SumByAccountID(ctx, account.ID)
	if err != nil {
		zap.L().Error("failed to sum ledger entries", zap.Error(err))
		return 0, 0, err
	}
	if sum != account.Balance {
		zap.L().Error("reconciliation incident: ledger sum does not match balance",
			zap.Int("userID", userID), zap.Int64("balance", account.Balance), zap.Int64("ledgerSum", sum))
	}
	return account.Balance, sum, nil
}

func (s *Service) invalidate(ctx context.Context, userID int) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		zap.L().Warn("failed to invalidate balance cache", zap.Int("userID", userID), zap.Error(err))
	}
}
