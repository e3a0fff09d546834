package trackrepo

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

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	uploadedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		trackID   int
		mockSetup func()
		expectErr bool
		result    *domain.Track
	}{
		{
			name:    "Existing trackID returns track",
			trackID: 5,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "artist_id", "title", "genre", "price", "plays", "uploaded_at"}).
					AddRow(5, 2, "Neon Skyline", "synthwave", int64(25), 3, uploadedAt)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist_id, title, genre, price, plays, uploaded_at FROM tracks WHERE id = $1`)).
					WithArgs(5).
					WillReturnRows(rows)
			},
			result: &domain.Track{ID: 5, ArtistID: 2, Title: "Neon Skyline", Genre: "synthwave", Price: 25, Plays: 3, UploadedAt: uploadedAt},
		},
		{
			name:    "Unknown trackID returns nil",
			trackID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist_id, title, genre, price, plays, uploaded_at FROM tracks WHERE id = $1`)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:    "Database error",
			trackID: 5,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist_id, title, genre, price, plays, uploaded_at FROM tracks WHERE id = $1`)).
					WithArgs(5).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.trackID)

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

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	uploadedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	track := &domain.Track{ArtistID: 2, Title: "Neon Skyline", Genre: "synthwave", Price: 25}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Saves track",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "artist_id", "title", "genre", "price", "plays", "uploaded_at"}).
					AddRow(5, 2, "Neon Skyline", "synthwave", int64(25), 0, uploadedAt)
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tracks (artist_id, title, genre, price) VALUES ($1, $2, $3, $4) RETURNING id, artist_id, title, genre, price, plays, uploaded_at`)).
					WithArgs(2, "Neon Skyline", "synthwave", int64(25)).
					WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tracks (artist_id, title, genre, price) VALUES ($1, $2, $3, $4) RETURNING id, artist_id, title, genre, price, plays, uploaded_at`)).
					WithArgs(2, "Neon Skyline", "synthwave", int64(25)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			created, err := repo.Save(context.Background(), track)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 5, created.ID)
				assert.Equal(t, 0, created.Plays)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByArtistID(t *testing.T) {
	repo, mock := NewMock(t)
	uploadedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Returns artist tracks",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "artist_id", "title", "genre", "price", "plays", "uploaded_at"}).
					AddRow(6, 2, "Midnight Drive", "synthwave", int64(30), 0, uploadedAt.Add(time.Hour)).
					AddRow(5, 2, "Neon Skyline", "synthwave", int64(25), 3, uploadedAt)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist_id, title, genre, price, plays, uploaded_at FROM tracks WHERE artist_id = $1 ORDER BY uploaded_at DESC`)).
					WithArgs(2).
					WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "No tracks returns empty slice",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "artist_id", "title", "genre", "price", "plays", "uploaded_at"})
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist_id, title, genre, price, plays, uploaded_at FROM tracks WHERE artist_id = $1 ORDER BY uploaded_at DESC`)).
					WithArgs(2).
					WillReturnRows(rows)
			},
			count: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist_id, title, genre, price, plays, uploaded_at FROM tracks WHERE artist_id = $1 ORDER BY uploaded_at DESC`)).
					WithArgs(2).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			tracks, err := repo.FindByArtistID(context.Background(), 2)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, tracks, tt.count)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock := NewMock(t)
	uploadedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"id", "artist_id", "title", "genre", "price", "plays", "uploaded_at"}).
		AddRow(5, 2, "Neon Skyline", "synthwave", int64(25), 3, uploadedAt).
		AddRow(7, 4, "Low Tide", "ambient", int64(15), 12, uploadedAt)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist_id, title, genre, price, plays, uploaded_at FROM tracks ORDER BY uploaded_at DESC`)).
		WillReturnRows(rows)

	tracks, err := repo.FindAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, tracks, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IncrementPlays(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Increments play counter",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE tracks SET plays = plays + 1 WHERE id = $1`)).
					WithArgs(5).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE tracks SET plays = plays + 1 WHERE id = $1`)).
					WithArgs(5).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.IncrementPlays(context.Background(), 5)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
