package services

import (
	"context"
	"time"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

// LedgerSvcFacade exposes the ledger aggregation queries. All of them are
// read-only, deterministic for identical inputs, and see only CONFIRMED
// entries.
type LedgerSvcFacade interface {
	// TrialBalance builds per-account debit/credit subtotals over [from, to].
	TrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error)

	// GeneralLedger builds the chronological running-balance view of one
	// account. A non-nil subAccountCode narrows it to a subsidiary ledger.
	GeneralLedger(ctx context.Context, accountID string, subAccountCode *string, from, to time.Time, limit, offset int) (*domain.LedgerReport, error)

	// DailyBalance buckets an account's activity by calendar day.
	DailyBalance(ctx context.Context, accountID string, from, to time.Time) (*domain.PeriodBalanceReport, error)

	// MonthlyBalance buckets an account's activity by calendar month.
	MonthlyBalance(ctx context.Context, accountID string, from, to time.Time) (*domain.PeriodBalanceReport, error)
}

// ComparativePeriod is an optional prior window for balance sheet / P&L rows.
type ComparativePeriod struct {
	From time.Time
	To   time.Time
}

// ReportingSvcFacade exposes the financial statements.
type ReportingSvcFacade interface {
	// BalanceSheet groups ASSET/LIABILITY/EQUITY balances as of a date. When
	// comparativeAsOf is non-nil each row also carries the prior amount,
	// absolute difference and percent change.
	BalanceSheet(ctx context.Context, asOf time.Time, comparativeAsOf *time.Time) (*domain.BalanceSheetReport, error)

	// ProfitAndLoss groups REVENUE/EXPENSE activity over [from, to], with an
	// optional comparative period.
	ProfitAndLoss(ctx context.Context, from, to time.Time, comparative *ComparativePeriod) (*domain.ProfitAndLossReport, error)
}
