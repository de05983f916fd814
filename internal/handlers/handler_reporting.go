package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/ledger"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(reportingService portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// registerReportingRoutes registers reporting routes nested under a workplace group.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/balances", h.ledgerBalances)
	}
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Recomputes the trial balance from the full entry set, rows ordered by account code
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Ledger inconsistency detected"
// @Router /workplaces/{workplace_id}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), workplaceID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrAggregationInconsistency):
			// Not a client error: the stored journal and its aggregate
			// disagree. The report is withheld rather than rendered wrong.
			logger.Error("Ledger inconsistency reported", slog.String("workplace_id", workplaceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"kind":  "AGGREGATION_INCONSISTENCY",
				"error": "Ledger inconsistency detected; report withheld",
			})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, time.Now()))
}

// ledgerBalances godoc
// @Summary Per-account balances
// @Description Returns aggregated debit/credit totals and signed net per account; accounts without activity are omitted
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Success 200 {object} dto.ListLedgerBalancesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /workplaces/{workplace_id}/reports/balances [get]
func (h *reportingHandler) ledgerBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balances, err := h.reportingService.LedgerBalances(c.Request.Context(), workplaceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to compute balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerBalancesResponse(balances))
}
