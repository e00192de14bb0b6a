package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Without asOf the stored current balances are used; with asOf balances are rebuilt from entries dated on or before it
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		tb  *domain.TrialBalance
		err error
	)
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		asOf, perr := time.Parse(time.DateOnly, asOfStr)
		if perr != nil {
			logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", perr.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		tb, err = h.reportingService.TrialBalanceAsOf(c.Request.Context(), asOf)
	} else {
		tb, err = h.reportingService.TrialBalance(c.Request.Context())
	}
	if err != nil {
		respondError(c, err, "Failed to generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(tb.Rows)), slog.Bool("balanced", tb.Balanced))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}
