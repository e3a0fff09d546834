package reports

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/dto"
	"github.com/soundvault/vsdwallet/internal/service/ledgerservice"
	"github.com/soundvault/vsdwallet/internal/service/reportservice"
	"github.com/soundvault/vsdwallet/pkg/auth"
	"github.com/soundvault/vsdwallet/pkg/utils"
)

type Service interface {
	Request(ctx context.Context, userID int) (*domain.Report, error)
	GetReports(ctx context.Context, userID int) ([]domain.Report, error)
	GetReport(ctx context.Context, userID, reportID int) (*domain.Report, error)
}

type ReportHandler struct {
	reportService Service
}

func New(reportService Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RequestReport godoc
//
//	@Summary		Request an AI performance report
//	@Description	Debit the report fee and queue a performance report for background generation. The fee is refunded when the user has no works or generation fails.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Success		202	{object}	dto.ReportResponseDTO	"Report accepted for processing"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		402	{object}	utils.Response			"Insufficient balance"
//	@Failure		422	{object}	utils.Response			"No works to report on"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Failure		503	{object}	utils.Response			"Store unavailable"
//	@Router			/api/user/reports [post]
func (h *ReportHandler) RequestReport(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	report, err := h.reportService.Request(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, reportservice.ErrNoWorks):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ledgerservice.ErrStoreUnavailable):
			utils.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, toReportDTO(report))
}

// GetReports godoc
//
//	@Summary		List requested reports
//	@Description	List the authenticated user's reports, newest first.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ReportResponseDTO	"Reports"
//	@Success		204	{object}	utils.Response			"No reports found"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/reports [get]
func (h *ReportHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	reports, err := h.reportService.GetReports(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(reports) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Reports not found")
		return
	}

	response := make([]dto.ReportResponseDTO, len(reports))
	for i := range reports {
		response[i] = toReportDTO(&reports[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetReport godoc
//
//	@Summary		Get one report
//	@Description	Fetch a single report with its generated body.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Param			reportID	path		int						true	"Report ID"
//	@Success		200			{object}	dto.ReportResponseDTO	"Report"
//	@Failure		401			{object}	utils.Response			"User not authorized"
//	@Failure		404			{object}	utils.Response			"Report not found"
//	@Failure		422			{object}	utils.Response			"Invalid report id"
//	@Failure		500			{object}	utils.Response			"Internal server error"
//	@Router			/api/user/reports/{reportID} [get]
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	reportID, err := strconv.Atoi(chi.URLParam(r, "reportID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid report id")
		return
	}

	report, err := h.reportService.GetReport(r.Context(), userID, reportID)
	if err != nil {
		if errors.Is(err, reportservice.ErrReportNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toReportDTO(report))
}

func toReportDTO(report *domain.Report) dto.ReportResponseDTO {
	return dto.ReportResponseDTO{
		ID:          report.ID,
		Status:      report.Status,
		Fee:         report.Fee,
		Body:        report.Body,
		RequestedAt: report.RequestedAt,
	}
}
