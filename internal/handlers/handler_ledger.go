package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
)

// periodBalanceFn is the shared shape of the daily and monthly summaries.
type periodBalanceFn func(ctx context.Context, accountID string, from, to time.Time) (*domain.PeriodBalanceReport, error)

// ledgerHandler handles the ledger aggregation queries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers trial balance, general/subsidiary ledger and
// the daily/monthly balance summaries.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.GET("/trial-balance", h.trialBalance)
		ledgers.GET("/accounts/:account_id", h.generalLedger)
		ledgers.GET("/accounts/:account_id/daily", h.dailyBalance)
		ledgers.GET("/accounts/:account_id/monthly", h.monthlyBalance)
	}
}

func (h *ledgerHandler) trialBalance(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.ledgerService.TrialBalance(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ledgerHandler) generalLedger(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	var subAccountCode *string
	if raw := c.Query("subAccountCode"); raw != "" {
		subAccountCode = &raw
	}

	report, err := h.ledgerService.GeneralLedger(c.Request.Context(), c.Param("account_id"), subAccountCode,
		from, to, intQuery(c, "limit", 0), intQuery(c, "offset", 0))
	if err != nil {
		respondError(c, err, "build general ledger")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ledgerHandler) dailyBalance(c *gin.Context) {
	h.periodBalance(c, h.ledgerService.DailyBalance, "build daily balance")
}

func (h *ledgerHandler) monthlyBalance(c *gin.Context) {
	h.periodBalance(c, h.ledgerService.MonthlyBalance, "build monthly balance")
}

func (h *ledgerHandler) periodBalance(c *gin.Context, build periodBalanceFn, what string) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	report, err := build(c.Request.Context(), c.Param("account_id"), from, to)
	if err != nil {
		respondError(c, err, what)
		return
	}
	c.JSON(http.StatusOK, report)
}
