package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/soundvault/vsdwallet/internal/config"
	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
	"github.com/soundvault/vsdwallet/internal/service/reportservice"
	"github.com/soundvault/vsdwallet/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var processingReports sync.Map

type Ledger interface {
	Apply(ctx context.Context, userID int, amount int64, kind, details string) (int64, error)
}

type GenerateRequest struct {
	UserID int            `json:"user_id"`
	Tracks []TrackPayload `json:"tracks"`
}

type TrackPayload struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
	Plays int    `json:"plays"`
	Price int64  `json:"price"`
}

type GenerateResponse struct {
	Report string `json:"report"`
}

// Service drains queued performance reports, sends them to the external
// generator and settles the fee: the report body on success, a refund
// through the ledger on terminal failure.
type Service struct {
	url            string
	reportRepo     reportservice.Repo
	trackRepo      reportservice.TrackRepo
	ledger         Ledger
	client         clients.HTTPClientI
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, reportRepo reportservice.Repo, trackRepo reportservice.TrackRepo, ledger Ledger, client clients.HTTPClientI) *Service {
	return &Service{
		url:            cfg.ReportsAddress,
		reportRepo:     reportRepo,
		trackRepo:      trackRepo,
		ledger:         ledger,
		client:         client,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Second * 5,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Report generation service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping report service")
			return
		case <-ticker.C:
			s.processReports(ctx)
		}
	}
}

func (s *Service) processReports(ctx context.Context) {
	reports, err := s.reportRepo.FindForProcessing(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch reports for processing", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, report := range reports {
		report := report

		if _, loaded := processingReports.LoadOrStore(report.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingReports.Delete(report.ID)
				return s.handleReport(ctx, report)
			})
			if err != nil {
				processingReports.Delete(report.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing reports", zap.Error(err))
	}
}

func (s *Service) handleReport(ctx context.Context, report domain.Report) error {
	if report.Status == reportservice.NewReportStatus {
		report.Status = reportservice.ProcessingReportStatus
		if err := s.reportRepo.Update(ctx, &report); err != nil {
			return fmt.Errorf("failed to mark report %d as processing: %w", report.ID, err)
		}
	}

	tracks, err := s.trackRepo.FindByArtistID(ctx, report.UserID)
	if err != nil {
		return fmt.Errorf("failed to fetch tracks for report %d: %w", report.ID, err)
	}

	payload := GenerateRequest{UserID: report.UserID}
	for _, track := range tracks {
		payload.Tracks = append(payload.Tracks, TrackPayload{
			Title: track.Title,
			Genre: track.Genre,
			Plays: track.Plays,
			Price: track.Price,
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal report %d payload: %w", report.ID, err)
	}

	url := s.url + "/api/reports"
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respBody, respHeaders, err := s.post(url, body)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return s.failReport(ctx, report, fmt.Errorf("failed to generate report %d after %d retries: %w", report.ID, maxRetries, err))
			}

			switch statusCode {
			case http.StatusTooManyRequests:
				s.waitRateLimit(report, respHeaders, attempt)
				continue
			case http.StatusOK:
				return s.finishReport(ctx, report, respBody)
			default:
				zap.L().Error("Unexpected status code from report generator",
					zap.Int("status", statusCode), zap.Int("reportID", report.ID))
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return s.failReport(ctx, report, errors.New("unexpected status code from report generator"))
			}
		}
	}
	return nil
}

func (s *Service) post(url string, body []byte) (int, []byte, http.Header, error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	return s.client.Post(url, headers, bytes.NewReader(body))
}

func (s *Service) finishReport(ctx context.Context, report domain.Report, respBody []byte) error {
	var response GenerateResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return s.failReport(ctx, report, fmt.Errorf("failed to parse generator response: %w", err))
	}

	report.Status = reportservice.ProcessedReportStatus
	report.Body = response.Report
	if err := s.reportRepo.Update(ctx, &report); err != nil {
		return fmt.Errorf("failed to store report %d: %w", report.ID, err)
	}
	zap.L().Info("Report generated", zap.Int("reportID", report.ID), zap.Int("userID", report.UserID))
	return nil
}

// failReport marks the report as failed and refunds the fee. The original
// debit stays in the ledger; the refund is a new compensating entry.
func (s *Service) failReport(ctx context.Context, report domain.Report, cause error) error {
	report.Status = reportservice.FailedReportStatus
	if err := s.reportRepo.Update(ctx, &report); err != nil {
		return fmt.Errorf("failed to mark report %d as failed: %w", report.ID, err)
	}

	if _, err := s.ledger.Apply(ctx, report.UserID, report.Fee, ledgerservice.KindDeposit,
		"Refund for failed report generation"); err != nil {
		zap.L().Error("reconciliation incident: report fee debited, refund not recorded",
			zap.Int("reportID", report.ID), zap.Int("userID", report.UserID),
			zap.Int64("fee", report.Fee), zap.Error(err))
		return err
	}
	return cause
}

func (s *Service) waitRateLimit(report domain.Report, respHeaders http.Header, attempt int) {
	retryAfterHeader := respHeaders.Get("Retry-After")
	retryAfter := retryInterval * time.Duration(attempt)

	if retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn(
		"Rate limit detected, retrying",
		zap.Int("reportID", report.ID),
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	time.Sleep(retryAfter)
}
