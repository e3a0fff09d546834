package auth

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)
	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedToken string
	}{
		{
			name: "Successful registration",
			body: `{"login":"newuser","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "newuser", "password123").
					Return(&domain.User{ID: 1, Login: "newuser"}, nil)
				service.EXPECT().
					GenerateToken(1).
					Return("token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedToken: "Bearer token",
		},
		{
			name:         "Invalid request body",
			body:         `{"login":"newuser"`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Password too short",
			body:         `{"login":"newuser","password":"short"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "User already exists",
			body: `{"login":"existing","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "existing", "password123").
					Return(nil, errors.New("user already exists"))
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Token generation failure",
			body: `{"login":"newuser","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "newuser", "password123").
					Return(&domain.User{ID: 1, Login: "newuser"}, nil)
				service.EXPECT().
					GenerateToken(1).
					Return("", errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Register(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedToken != "" {
				assert.Equal(t, tt.expectedToken, w.Header().Get("Authorization"))
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)
	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedToken string
	}{
		{
			name: "Successful login",
			body: `{"login":"user","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "user", "password123").
					Return(&domain.User{ID: 1, Login: "user"}, nil)
				service.EXPECT().
					GenerateToken(1).
					Return("token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedToken: "Bearer token",
		},
		{
			name:         "Invalid request body",
			body:         `{"login":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Invalid credentials",
			body: `{"login":"user","password":"wrongpass123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "user", "wrongpass123").
					Return(nil, errors.New("invalid credentials"))
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Login(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedToken != "" {
				assert.Equal(t, tt.expectedToken, w.Header().Get("Authorization"))
			}
		})
	}
}
