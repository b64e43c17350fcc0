package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostedLine is one confirmed journal-entry line as fed into ledger
// aggregation: the line itself plus the header fields reports need.
// EntryDescription is the header description used as a fallback when the line
// carries none of its own.
type PostedLine struct {
	JournalEntryID   string          `json:"journalEntryID"`
	JournalDate      time.Time       `json:"journalDate"`
	LineNumber       int             `json:"lineNumber"`
	AccountID        string          `json:"accountID"`
	SubAccountCode   string          `json:"subAccountCode,omitempty"`
	Side             TransactionType `json:"side"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description,omitempty"`
	EntryDescription string          `json:"entryDescription"`
}

// EffectiveDescription falls back to the entry header description.
func (l PostedLine) EffectiveDescription() string {
	if l.Description != "" {
		return l.Description
	}
	return l.EntryDescription
}

// TrialBalanceRow is one account's debit/credit subtotals.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
}

// TrialBalanceReport verifies total debits equal total credits over a window.
type TrialBalanceReport struct {
	From        time.Time         `json:"from"`
	To          time.Time         `json:"to"`
	Rows        []TrialBalanceRow `json:"rows"`
	DebitTotal  decimal.Decimal   `json:"debitTotal"`
	CreditTotal decimal.Decimal   `json:"creditTotal"`
	Balanced    bool              `json:"balanced"`
	Difference  decimal.Decimal   `json:"difference"` // |Σdebit − Σcredit|
}

// LedgerLine is one row of a general or subsidiary ledger with its running balance.
type LedgerLine struct {
	JournalEntryID string          `json:"journalEntryID"`
	JournalDate    time.Time       `json:"journalDate"`
	LineNumber     int             `json:"lineNumber"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerReport is the chronological running-balance view of one account,
// optionally restricted to a sub-account (subsidiary ledger).
type LedgerReport struct {
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	SubAccountCode string          `json:"subAccountCode,omitempty"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []LedgerLine    `json:"lines"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// PeriodBalanceRow is one calendar bucket (day or month) of an account's
// activity. TransactionCount is 0 for an empty bucket, never null.
type PeriodBalanceRow struct {
	PeriodStart      time.Time       `json:"periodStart"`
	Label            string          `json:"label"` // "2026-01-15" or "2026-01"
	DebitTotal       decimal.Decimal `json:"debitTotal"`
	CreditTotal      decimal.Decimal `json:"creditTotal"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
	TransactionCount int             `json:"transactionCount"`
}

// PeriodBalanceReport holds daily or monthly buckets for one account.
type PeriodBalanceReport struct {
	AccountID      string             `json:"accountID"`
	AccountName    string             `json:"accountName"`
	From           time.Time          `json:"from"`
	To             time.Time          `json:"to"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Rows           []PeriodBalanceRow `json:"rows"`
}

// ComparativeRow is one account row of a balance sheet or P&L section. The
// comparative fields are present only when a prior period was supplied, and
// ChangePercent is omitted when the prior amount is zero.
type ComparativeRow struct {
	AccountID      string           `json:"accountID"`
	AccountCode    string           `json:"accountCode"`
	AccountName    string           `json:"accountName"`
	Amount         decimal.Decimal  `json:"amount"`
	PreviousAmount *decimal.Decimal `json:"previousAmount,omitempty"`
	Difference     *decimal.Decimal `json:"difference,omitempty"`
	ChangePercent  *decimal.Decimal `json:"changePercent,omitempty"`
}

// BalanceSheetReport groups accounts into ASSET/LIABILITY/EQUITY sections as
// of a date.
type BalanceSheetReport struct {
	AsOf             time.Time        `json:"asOf"`
	Assets           []ComparativeRow `json:"assets"`
	Liabilities      []ComparativeRow `json:"liabilities"`
	Equity           []ComparativeRow `json:"equity"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"`
}

// ProfitAndLossReport groups accounts into REVENUE/EXPENSE sections over a period.
type ProfitAndLossReport struct {
	From          time.Time        `json:"from"`
	To            time.Time        `json:"to"`
	Revenue       []ComparativeRow `json:"revenue"`
	Expenses      []ComparativeRow `json:"expenses"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
}
