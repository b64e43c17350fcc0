package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
)

// reportingHandler handles the financial statement queries.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers balance sheet and profit-and-loss routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/profit-and-loss", h.profitAndLoss)
	}
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	asOf, ok := dateQuery(c, "asOf")
	if !ok {
		return
	}
	comparativeAsOf, ok := optionalDateQuery(c, "comparativeAsOf")
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf, comparativeAsOf)
	if err != nil {
		respondError(c, err, "build balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	comparativeFrom, ok := optionalDateQuery(c, "comparativeFrom")
	if !ok {
		return
	}
	comparativeTo, ok := optionalDateQuery(c, "comparativeTo")
	if !ok {
		return
	}

	var comparative *portssvc.ComparativePeriod
	if comparativeFrom != nil && comparativeTo != nil {
		comparative = &portssvc.ComparativePeriod{From: *comparativeFrom, To: *comparativeTo}
	} else if comparativeFrom != nil || comparativeTo != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comparativeFrom and comparativeTo must be provided together"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to, comparative)
	if err != nil {
		respondError(c, err, "build profit and loss statement")
		return
	}
	c.JSON(http.StatusOK, report)
}
