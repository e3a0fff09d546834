package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/dto"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
	"github.com/soundvault/vsdwallet/pkg/auth"
	"github.com/soundvault/vsdwallet/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, userID int) (int64, error)
	History(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
	ClaimDaily(ctx context.Context, userID int, today string, reward int64) (bool, error)
	Audit(ctx context.Context, userID int) (balance, ledgerSum int64, err error)
}

const dayLayout = "2006-01-02"

type WalletHandler struct {
	ledgerService Service
	dailyReward   int64
}

func New(ledgerService Service, dailyReward int64) *WalletHandler {
	return &WalletHandler{
		ledgerService: ledgerService,
		dailyReward:   dailyReward,
	}
}

// GetBalance godoc
//
//	@Summary		Get current wallet balance
//	@Description	Retrieve the current VSD balance for the authenticated user.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Account not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/wallet [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.ledgerService.GetBalance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrAccountNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance: balance,
	})
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	Get the wallet audit trail for the authenticated user, newest first.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GetTransactionsResponseDTO	"Transaction history"
//	@Success		204	{object}	utils.Response					"No transactions found"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/user/wallet/transactions [get]
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	entries, err := h.ledgerService.History(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	if len(entries) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Transactions not found")
		return
	}

	response := make([]dto.GetTransactionsResponseDTO, len(entries))
	for i, entry := range entries {
		response[i] = dto.GetTransactionsResponseDTO{
			Amount:        entry.Amount,
			Kind:          entry.Kind,
			Details:       entry.Details,
			BalanceBefore: entry.BalanceBefore,
			BalanceAfter:  entry.BalanceAfter,
			CreatedAt:     entry.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ClaimDaily godoc
//
//	@Summary		Claim the daily reward
//	@Description	Credit the fixed daily VSD reward at most once per calendar day. Claiming twice on one day is not an error: the response carries claimed=false.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ClaimDailyResponseDTO	"Claim outcome"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		404	{object}	utils.Response				"Account not found"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Failure		503	{object}	utils.Response				"Store unavailable"
//	@Router			/api/user/wallet/claim-daily [post]
func (h *WalletHandler) ClaimDaily(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	today := time.Now().UTC().Format(dayLayout)
	claimed, err := h.ledgerService.ClaimDaily(r.Context(), userID, today, h.dailyReward)
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrAccountNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ledgerservice.ErrStoreUnavailable):
			utils.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if !claimed {
		utils.RespondWithJSON(w, http.StatusOK, dto.ClaimDailyResponseDTO{
			Claimed: false,
			Message: "You have already claimed your credits for today.",
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ClaimDailyResponseDTO{
		Claimed: true,
		Message: fmt.Sprintf("You have successfully claimed %d VSD-lite credits!", h.dailyReward),
	})
}

// Audit godoc
//
//	@Summary		Reconcile the wallet against the ledger
//	@Description	Compare the denormalized balance with the sum of all ledger entries. The two must match.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AuditResponseDTO	"Reconciliation result"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Account not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/wallet/audit [get]
func (h *WalletHandler) Audit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, ledgerSum, err := h.ledgerService.Audit(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrAccountNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuditResponseDTO{
		Balance:    balance,
		LedgerSum:  ledgerSum,
		Consistent: balance == ledgerSum,
	})
}
