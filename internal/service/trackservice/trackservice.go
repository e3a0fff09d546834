package trackservice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
)

type Repo interface {
	FindByID(ctx context.Context, trackID int) (*domain.Track, error)
	Save(ctx context.Context, track *domain.Track) (*domain.Track, error)
	FindByArtistID(ctx context.Context, artistID int) ([]domain.Track, error)
	FindAll(ctx context.Context) ([]domain.Track, error)
	IncrementPlays(ctx context.Context, trackID int) error
}

type Ledger interface {
	Apply(ctx context.Context, userID int, amount int64, kind, details string) (int64, error)
}

type Service struct {
	repo   Repo
	ledger Ledger
}

func New(repo Repo, ledger Ledger) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger,
	}
}

var (
	ErrTrackNotFound = errors.New("track not found")
	ErrOwnTrack      = errors.New("can't purchase your own track")
)

func (s *Service) AddTrack(ctx context.Context, artistID int, title, genre string, price int64) (*domain.Track, error) {
	track, err := s.repo.Save(ctx, &domain.Track{
		ArtistID: artistID,
		Title:    title,
		Genre:    genre,
		Price:    price,
	})
	if err != nil {
		zap.L().Error("can't add track", zap.Error(err))
		return nil, err
	}
	return track, nil
}

func (s *Service) GetCatalog(ctx context.Context) ([]domain.Track, error) {
	tracks, err := s.repo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to get catalog", zap.Error(err))
		return nil, err
	}
	return tracks, nil
}

func (s *Service) GetArtistTracks(ctx context.Context, artistID int) ([]domain.Track, error) {
	tracks, err := s.repo.FindByArtistID(ctx, artistID)
	if err != nil {
		zap.L().Error("failed to get artist tracks", zap.Error(err))
		return nil, err
	}
	return tracks, nil
}

// Purchase debits the buyer and credits the artist. The two legs are
// separate ledger transactions: when the artist credit fails after the
// buyer debit committed, a compensating refund entry is issued to the
// buyer rather than rolling anything back.
func (s *Service) Purchase(ctx context.Context, buyerID, trackID int) (*domain.Track, error) {
	track, err := s.repo.FindByID(ctx, trackID)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, ErrTrackNotFound
	}
	if track.ArtistID == buyerID {
		return nil, ErrOwnTrack
	}

	if _, err := s.ledger.Apply(ctx, buyerID, -track.Price, ledgerservice.KindPurchase,
		fmt.Sprintf("Purchase of track %q", track.Title)); err != nil {
		return nil, err
	}

	if _, err := s.ledger.Apply(ctx, track.ArtistID, track.Price, ledgerservice.KindSale,
		fmt.Sprintf("Sale of track %q", track.Title)); err != nil {
		zap.L().Error("artist credit failed, refunding buyer",
			zap.Int("buyerID", buyerID), zap.Int("trackID", trackID), zap.Error(err))
		if _, refundErr := s.ledger.Apply(ctx, buyerID, track.Price, ledgerservice.KindDeposit,
			fmt.Sprintf("Refund for failed purchase of track %q", track.Title)); refundErr != nil {
			zap.L().Error("reconciliation incident: purchase debited, sale and refund both failed",
				zap.Int("buyerID", buyerID), zap.Int("trackID", trackID),
				zap.Int64("amount", track.Price), zap.Error(refundErr))
		}
		return nil, err
	}

	if err := s.repo.IncrementPlays(ctx, trackID); err != nil {
		zap.L().Warn("can't increment track plays", zap.Int("trackID", trackID), zap.Error(err))
	}
	return track, nil
}
