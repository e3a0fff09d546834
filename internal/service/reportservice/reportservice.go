package reportservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
)

type Repo interface {
	Save(ctx context.Context, report *domain.Report) (*domain.Report, error)
	FindByID(ctx context.Context, reportID int) (*domain.Report, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Report, error)
	FindForProcessing(ctx context.Context, limit uint32) ([]domain.Report, error)
	Update(ctx context.Context, report *domain.Report) error
}

type TrackRepo interface {
	FindByArtistID(ctx context.Context, artistID int) ([]domain.Track, error)
}

type Ledger interface {
	Apply(ctx context.Context, userID int, amount int64, kind, details string) (int64, error)
}

// Report lifecycle statuses.
const (
	// NewReportStatus queued, fee already debited;
	NewReportStatus string = "NEW"
	// ProcessingReportStatus picked up by the generation worker;
	ProcessingReportStatus string = "PROCESSING"
	// ProcessedReportStatus generation finished, body stored;
	ProcessedReportStatus string = "PROCESSED"
	// FailedReportStatus generation failed, fee refunded.
	FailedReportStatus string = "FAILED"
)

var (
	ErrNoWorks        = errors.New("no works to generate a report for")
	ErrReportNotFound = errors.New("report not found")
)

type Service struct {
	repo      Repo
	trackRepo TrackRepo
	ledger    Ledger
	fee       int64
}

func New(repo Repo, trackRepo TrackRepo, ledger Ledger, fee int64) *Service {
	return &Service{
		repo:      repo,
		trackRepo: trackRepo,
		ledger:    ledger,
		fee:       fee,
	}
}

// Request debits the report fee up front and queues the report for the
// background worker. The fee is refunded straight away when the user has
// nothing to report on or the queueing itself fails; the debit is never
// rolled back, every correction is its own ledger entry.
func (s *Service) Request(ctx context.Context, userID int) (*domain.Report, error) {
	if _, err := s.ledger.Apply(ctx, userID, -s.fee, ledgerservice.KindServiceFee,
		"AI performance report generation"); err != nil {
		return nil, err
	}

	tracks, err := s.trackRepo.FindByArtistID(ctx, userID)
	if err != nil {
		s.refund(ctx, userID, "Refund for failed report generation")
		return nil, err
	}
	if len(tracks) == 0 {
		s.refund(ctx, userID, "Refund for report generation (no works found)")
		return nil, ErrNoWorks
	}

	report, err := s.repo.Save(ctx, &domain.Report{
		UserID: userID,
		Status: NewReportStatus,
		Fee:    s.fee,
	})
	if err != nil {
		zap.L().Error("can't queue report", zap.Error(err))
		s.refund(ctx, userID, "Refund for failed report generation")
		return nil, err
	}
	return report, nil
}

func (s *Service) GetReports(ctx context.Context, userID int) ([]domain.Report, error) {
	reports, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get reports", zap.Error(err))
		return nil, err
	}
	return reports, nil
}

func (s *Service) GetReport(ctx context.Context, userID, reportID int) (*domain.Report, error) {
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil || report.UserID != userID {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (s *Service) refund(ctx context.Context, userID int, details string) {
	if _, err := s.ledger.Apply(ctx, userID, s.fee, ledgerservice.KindDeposit, details); err != nil {
		zap.L().Error("reconciliation incident: report fee debited, refund not recorded",
			zap.Int("userID", userID), zap.Int64("fee", s.fee), zap.Error(err))
	}
}
