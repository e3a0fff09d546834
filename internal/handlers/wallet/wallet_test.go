package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/dto"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
	"github.com/soundvault/vsdwallet/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*WalletHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service, 5)
	defer ctrl.Finish()
	return handler, service
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.BalanceResponseDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().
					GetBalance(gomock.Any(), 1).
					Return(int64(100), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{Balance: 100},
		},
		{
			name: "Account not found",
			prepareMock: func() {
				service.EXPECT().
					GetBalance(gomock.Any(), 1).
					Return(int64(0), ledgerservice.ErrAccountNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().
					GetBalance(gomock.Any(), 1).
					Return(int64(0), errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/wallet", nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()
			handler.GetBalance(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	handler, service := NewMock(t)
	now := time.Now()
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody []dto.GetTransactionsResponseDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().
					History(gomock.Any(), 1).
					Return([]domain.LedgerEntry{
						{
							Amount:        -25,
							Kind:          ledgerservice.KindServiceFee,
							Details:       "AI performance report generation",
							BalanceBefore: 100,
							BalanceAfter:  75,
							CreatedAt:     now,
						},
						{
							Amount:        10,
							Kind:          ledgerservice.KindDeposit,
							Details:       "Initial sign-up reward",
							BalanceBefore: 0,
							BalanceAfter:  10,
							CreatedAt:     now,
						},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: []dto.GetTransactionsResponseDTO{
				{
					Amount:        -25,
					Kind:          ledgerservice.KindServiceFee,
					Details:       "AI performance report generation",
					BalanceBefore: 100,
					BalanceAfter:  75,
					CreatedAt:     now,
				},
				{
					Amount:        10,
					Kind:          ledgerservice.KindDeposit,
					Details:       "Initial sign-up reward",
					BalanceBefore: 0,
					BalanceAfter:  10,
					CreatedAt:     now,
				},
			},
		},
		{
			name: "No transactions",
			prepareMock: func() {
				service.EXPECT().
					History(gomock.Any(), 1).
					Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().
					History(gomock.Any(), 1).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/wallet/transactions", nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()
			handler.GetTransactions(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.GetTransactionsResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, len(tt.expectedBody))
				for i := range body {
					assert.Equal(t, tt.expectedBody[i].Amount, body[i].Amount)
					assert.Equal(t, tt.expectedBody[i].Kind, body[i].Kind)
					assert.Equal(t, tt.expectedBody[i].Details, body[i].Details)
					assert.Equal(t, tt.expectedBody[i].BalanceBefore, body[i].BalanceBefore)
					assert.Equal(t, tt.expectedBody[i].BalanceAfter, body[i].BalanceAfter)
				}
			}
		})
	}
}

func TestClaimDailyHandler(t *testing.T) {
	handler, service := NewMock(t)
	tests := []struct {
		name            string
		prepareMock     func()
		expectedCode    int
		expectedClaimed bool
		expectedMessage string
	}{
		{
			name: "Successful claim",
			prepareMock: func() {
				service.EXPECT().
					ClaimDaily(gomock.Any(), 1, gomock.Any(), int64(5)).
					Return(true, nil)
			},
			expectedCode:    http.StatusOK,
			expectedClaimed: true,
			expectedMessage: "You have successfully claimed 5 VSD-lite credits!",
		},
		{
			name: "Already claimed today",
			prepareMock: func() {
				service.EXPECT().
					ClaimDaily(gomock.Any(), 1, gomock.Any(), int64(5)).
					Return(false, nil)
			},
			expectedCode:    http.StatusOK,
			expectedClaimed: false,
			expectedMessage: "You have already claimed your credits for today.",
		},
		{
			name: "Account not found",
			prepareMock: func() {
				service.EXPECT().
					ClaimDaily(gomock.Any(), 1, gomock.Any(), int64(5)).
					Return(false, ledgerservice.ErrAccountNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Store unavailable",
			prepareMock: func() {
				service.EXPECT().
					ClaimDaily(gomock.Any(), 1, gomock.Any(), int64(5)).
					Return(false, ledgerservice.ErrStoreUnavailable)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().
					ClaimDaily(gomock.Any(), 1, gomock.Any(), int64(5)).
					Return(false, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/wallet/claim-daily", nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()
			handler.ClaimDaily(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.ClaimDailyResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedClaimed, body.Claimed)
				assert.Equal(t, tt.expectedMessage, body.Message)
			}
		})
	}
}

func TestAuditHandler(t *testing.T) {
	handler, service := NewMock(t)
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.AuditResponseDTO
	}{
		{
			name: "Consistent wallet",
			prepareMock: func() {
				service.EXPECT().
					Audit(gomock.Any(), 1).
					Return(int64(100), int64(100), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.AuditResponseDTO{Balance: 100, LedgerSum: 100, Consistent: true},
		},
		{
			name: "Inconsistent wallet",
			prepareMock: func() {
				service.EXPECT().
					Audit(gomock.Any(), 1).
					Return(int64(100), int64(95), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.AuditResponseDTO{Balance: 100, LedgerSum: 95, Consistent: false},
		},
		{
			name: "Account not found",
			prepareMock: func() {
				service.EXPECT().
					Audit(gomock.Any(), 1).
					Return(int64(0), int64(0), ledgerservice.ErrAccountNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/wallet/audit", nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()
			handler.Audit(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.AuditResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}
