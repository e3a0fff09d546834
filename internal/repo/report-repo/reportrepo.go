package reportrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	query := `
        INSERT INTO reports (user_id, status, fee, body)
        VALUES ($1, $2, $3, $4)
        RETURNING id, user_id, status, fee, body, requested_at
    `
	row := r.db.QueryRow(ctx, query, report.UserID, report.Status, report.Fee, report.Body)

	var created domain.Report
	err := row.Scan(&created.ID, &created.UserID, &created.Status, &created.Fee, &created.Body, &created.RequestedAt)
	if err != nil {
		zap.L().Error("can't save report", zap.Error(err))
		return nil, err
	}
	return &created, nil
}

func (r *Repository) FindByID(ctx context.Context, reportID int) (*domain.Report, error) {
	query := `
        SELECT id, user_id, status, fee, body, requested_at
        FROM reports
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, reportID)

	var report domain.Report
	err := row.Scan(&report.ID, &report.UserID, &report.Status, &report.Fee, &report.Body, &report.RequestedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find report", zap.Error(err))
		return nil, err
	}
	return &report, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Report, error) {
	query := `
        SELECT id, user_id, status, fee, body, requested_at
        FROM reports
        WHERE user_id = $1
        ORDER BY requested_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get reports", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var report domain.Report
		err := rows.Scan(&report.ID, &report.UserID, &report.Status, &report.Fee, &report.Body, &report.RequestedAt)
		if err != nil {
			zap.L().Error("can't scan report row", zap.Error(err))
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *Repository) FindForProcessing(ctx context.Context, limit uint32) ([]domain.Report, error) {
	query := `
        SELECT id, user_id, status, fee, body, requested_at
        FROM reports
        WHERE status = 'NEW' OR status = 'PROCESSING'
        ORDER BY requested_at ASC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get reports for processing", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var report domain.Report
		err := rows.Scan(&report.ID, &report.UserID, &report.Status, &report.Fee, &report.Body, &report.RequestedAt)
		if err != nil {
			zap.L().Error("can't scan report row for processing", zap.Error(err))
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *Repository) Update(ctx context.Context, report *domain.Report) error {
	query := `
        UPDATE reports
        SET status = $1, body = $2
        WHERE id = $3
    `
	if _, err := r.db.Exec(ctx, query, report.Status, report.Body, report.ID); err != nil {
		zap.L().Error("failed to update report", zap.Error(err))
		return err
	}
	return nil
}
