package trackservice

import (
	"context"
	"errors"
	"testing"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockLedger) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	ledger := NewMockLedger(ctrl)
	service := New(repo, ledger)
	defer ctrl.Finish()
	return service, repo, ledger
}

func TestAddTrack(t *testing.T) {
	service, repo, _ := NewMock(t)
	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Successful upload",
			prepareMock: func() {
				repo.EXPECT().Save(gomock.Any(), &domain.Track{
					ArtistID: 1,
					Title:    "Neon Skyline",
					Genre:    "synthwave",
					Price:    25,
				}).Return(&domain.Track{ID: 1, ArtistID: 1, Title: "Neon Skyline", Genre: "synthwave", Price: 25}, nil)
			},
		},
		{
			name: "Save failure",
			prepareMock: func() {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			track, err := service.AddTrack(context.Background(), 1, "Neon Skyline", "synthwave", 25)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, track)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Neon Skyline", track.Title)
			}
		})
	}
}

func TestGetCatalog(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().FindAll(gomock.Any()).Return([]domain.Track{
		{ID: 2, ArtistID: 3, Title: "Midnight Drive"},
		{ID: 1, ArtistID: 2, Title: "Neon Skyline"},
	}, nil)

	tracks, err := service.GetCatalog(context.Background())
	assert.NoError(t, err)
	assert.Len(t, tracks, 2)
}

func TestGetArtistTracks(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().FindByArtistID(gomock.Any(), 1).Return([]domain.Track{
		{ID: 1, ArtistID: 1, Title: "Neon Skyline"},
	}, nil)

	tracks, err := service.GetArtistTracks(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, tracks, 1)
}

func TestPurchase(t *testing.T) {
	service, repo, ledger := NewMock(t)
	track := &domain.Track{ID: 5, ArtistID: 2, Title: "Neon Skyline", Price: 25}

	tests := []struct {
		name          string
		buyerID       int
		prepareMock   func()
		expectedError error
	}{
		{
			name:    "Successful purchase debits buyer and credits artist",
			buyerID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 5).Return(track, nil)
				ledger.EXPECT().Apply(gomock.Any(), 1, int64(-25), ledgerservice.KindPurchase, `Purchase of track "Neon Skyline"`).
					Return(int64(75), nil)
				ledger.EXPECT().Apply(gomock.Any(), 2, int64(25), ledgerservice.KindSale, `Sale of track "Neon Skyline"`).
					Return(int64(125), nil)
				repo.EXPECT().IncrementPlays(gomock.Any(), 5).Return(nil)
			},
		},
		{
			name:    "Track not found",
			buyerID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 5).Return(nil, nil)
			},
			expectedError: ErrTrackNotFound,
		},
		{
			name:    "Own track",
			buyerID: 2,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 5).Return(track, nil)
			},
			expectedError: ErrOwnTrack,
		},
		{
			name:    "Insufficient balance stops before the artist credit",
			buyerID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 5).Return(track, nil)
				ledger.EXPECT().Apply(gomock.Any(), 1, int64(-25), ledgerservice.KindPurchase, gomock.Any()).
					Return(int64(0), ledgerservice.ErrInsufficientBalance)
			},
			expectedError: ledgerservice.ErrInsufficientBalance,
		},
		{
			name:    "Artist credit failure refunds the buyer",
			buyerID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 5).Return(track, nil)
				ledger.EXPECT().Apply(gomock.Any(), 1, int64(-25), ledgerservice.KindPurchase, gomock.Any()).
					Return(int64(75), nil)
				ledger.EXPECT().Apply(gomock.Any(), 2, int64(25), ledgerservice.KindSale, gomock.Any()).
					Return(int64(0), errors.New("db error"))
				ledger.EXPECT().Apply(gomock.Any(), 1, int64(25), ledgerservice.KindDeposit, `Refund for failed purchase of track "Neon Skyline"`).
					Return(int64(100), nil)
			},
			expectedError: errors.New("db error"),
		},
		{
			name:    "Refund failure is still reported as the original error",
			buyerID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 5).Return(track, nil)
				ledger.EXPECT().Apply(gomock.Any(), 1, int64(-25), ledgerservice.KindPurchase, gomock.Any()).
					Return(int64(75), nil)
				ledger.EXPECT().Apply(gomock.Any(), 2, int64(25), ledgerservice.KindSale, gomock.Any()).
					Return(int64(0), errors.New("db error"))
				ledger.EXPECT().Apply(gomock.Any(), 1, int64(25), ledgerservice.KindDeposit, gomock.Any()).
					Return(int64(0), errors.New("refund failed"))
			},
			expectedError: errors.New("db error"),
		},
		{
			name:    "Play counter failure does not fail the purchase",
			buyerID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 5).Return(track, nil)
				ledger.EXPECT().Apply(gomock.Any(), 1, int64(-25), ledgerservice.KindPurchase, gomock.Any()).
					Return(int64(75), nil)
				ledger.EXPECT().Apply(gomock.Any(), 2, int64(25), ledgerservice.KindSale, gomock.Any()).
					Return(int64(125), nil)
				repo.EXPECT().IncrementPlays(gomock.Any(), 5).Return(errors.New("db error"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			got, err := service.Purchase(context.Background(), tt.buyerID, 5)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, track.Title, got.Title)
			}
		})
	}
}
