package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// reportingHandler handles financial report requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/profit-loss", h.profitLoss)
		reports.GET("/dashboard", h.dashboard)
	}
}

// profitLoss godoc
// @Summary Profit and loss report
// @Description Computes income, expenses, net profit and margin for the period, with per-category breakdowns. Defaults to the current calendar year.
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitLossResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit-loss [get]
func (h *reportingHandler) profitLoss(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	var params dto.ReportPeriodParams
	if !bindQuery(c, &params) {
		return
	}

	report, err := h.reportingService.ProfitLoss(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "build profit and loss report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// dashboard godoc
// @Summary Dashboard summary
// @Description Computes the at-a-glance counters for the company home view.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.Dashboard(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "build dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
