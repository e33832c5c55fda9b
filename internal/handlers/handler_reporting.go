package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rahmannascenia/accountingbolt/internal/core/ports/services"
	"github.com/rahmannascenia/accountingbolt/internal/dto"
)

// ReportingHandler handles the report endpoints.
type ReportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// NewReportingHandler creates a new reporting handler.
func NewReportingHandler(reportingService portssvc.ReportingSvcFacade) *ReportingHandler {
	return &ReportingHandler{reportingService: reportingService}
}

// TrialBalance godoc
// @Summary      Hierarchical trial balance
// @Description  Returns the trial balance as of a date, with the account hierarchy, rolled-up nets and any data-integrity warnings.
// @Tags         reports
// @Produce      json
// @Param        asOf  query     string  false  "As-of date (YYYY-MM-DD), defaults to today"
// @Success      200   {object}  dto.TrialBalanceResponse
// @Failure      400   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /reports/trial-balance [get]
func (h *ReportingHandler) TrialBalance(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// BalanceSheet godoc
// @Summary      Balance sheet with unrealized FX overlay
// @Description  Returns asset, liability and equity buckets as of a date, plus the revaluation preview computed from the same ledger snapshot.
// @Tags         reports
// @Produce      json
// @Param        asOf  query     string  false  "As-of date (YYYY-MM-DD), defaults to today"
// @Success      200   {object}  dto.BalanceSheetResponse
// @Failure      400   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /reports/balance-sheet [get]
func (h *ReportingHandler) BalanceSheet(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// ARBreakdown godoc
// @Summary      Accounts receivable breakdown
// @Description  Lists unpaid invoices as of a date with their payment status and days overdue.
// @Tags         reports
// @Produce      json
// @Param        asOf  query     string  false  "As-of date (YYYY-MM-DD), defaults to today"
// @Success      200   {object}  dto.ARBreakdownResponse
// @Failure      400   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /reports/ar-breakdown [get]
func (h *ReportingHandler) ARBreakdown(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.ARBreakdown(c.Request.Context(), asOf)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToARBreakdownResponse(report))
}

// RevaluationPreview godoc
// @Summary      Unrealized FX revaluation preview
// @Description  Computes open foreign-currency positions, their unrealized gains and losses, and a balanced virtual journal entry. Nothing is posted.
// @Tags         reports
// @Produce      json
// @Param        asOf  query     string  false  "As-of date (YYYY-MM-DD), defaults to today"
// @Success      200   {object}  dto.RevaluationPreviewResponse
// @Failure      400   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /reports/revaluation [get]
func (h *ReportingHandler) RevaluationPreview(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	result, err := h.reportingService.RevaluationPreview(c.Request.Context(), asOf)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRevaluationPreviewResponse(result))
}
