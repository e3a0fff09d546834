package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
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

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		login     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "Existing login returns user",
			login: "listener42",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "created_at"}).
					AddRow(1, "listener42", "hashed", createdAt)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, login, password_hash, created_at FROM users WHERE login = $1`)).
					WithArgs("listener42").
					WillReturnRows(rows)
			},
			result: &domain.User{ID: 1, Login: "listener42", PasswordHash: "hashed", CreatedAt: createdAt},
		},
		{
			name:  "Unknown login returns nil",
			login: "ghost",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, login, password_hash, created_at FROM users WHERE login = $1`)).
					WithArgs("ghost").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			login: "listener42",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, login, password_hash, created_at FROM users WHERE login = $1`)).
					WithArgs("listener42").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByLogin(context.Background(), tt.login)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Creates user",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "created_at"}).
					AddRow(1, "listener42", "hashed", createdAt)
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, login, password_hash, created_at`)).
					WithArgs("listener42", "hashed").
					WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, login, password_hash, created_at`)).
					WithArgs("listener42", "hashed").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := repo.Create(context.Background(), &domain.User{Login: "listener42", PasswordHash: "hashed"})

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "listener42", user.Login)
				assert.Equal(t, 1, user.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
