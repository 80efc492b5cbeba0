package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
	"github.com/shokoko2010/Elhamd-sub014/internal/middleware"
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

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/summary", h.getSummary)
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
	}
}

// getSummary godoc
// @Summary Financial summary
// @Description Totals for assets, liabilities, revenue and expenses with net income, equity, every account's balance and entry counts per status.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate summary"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to generate summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Each account's net debit or credit, with the overall totals.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tb, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}
