package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	"github.com/finbooks/general_ledger_app/internal/utils/accounting"
)

// Pure aggregation functions. They never mutate their inputs and are
// deterministic for identical inputs; the service wrappers around them only
// fetch data and pick parameters.

// RunningBalanceLines converts posted lines, already in date order, into
// ledger lines carrying a running balance. Debits add and credits subtract for
// debit-normal accounts; the reverse for credit-normal accounts. An account
// type outside the known set is an error, never a silent zero movement.
func RunningBalanceLines(opening decimal.Decimal, lines []domain.PostedLine, accountType domain.AccountType) ([]domain.LedgerLine, error) {
	out := make([]domain.LedgerLine, 0, len(lines))
	balance := opening
	for _, l := range lines {
		signed, err := accounting.SignedAmount(l.Side, accountType, l.Amount)
		if err != nil {
			return nil, fmt.Errorf("line %d of entry %s: %w", l.LineNumber, l.JournalEntryID, err)
		}
		balance = balance.Add(signed)
		row := domain.LedgerLine{
			JournalEntryID: l.JournalEntryID,
			JournalDate:    l.JournalDate,
			LineNumber:     l.LineNumber,
			Description:    l.EffectiveDescription(),
			Debit:          decimal.Zero,
			Credit:         decimal.Zero,
			RunningBalance: balance,
		}
		if l.Side == domain.Debit {
			row.Debit = l.Amount
		} else {
			row.Credit = l.Amount
		}
		out = append(out, row)
	}
	return out, nil
}

// BuildTrialBalance computes per-account debit/credit subtotals plus the
// overall balanced flag and absolute difference.
func BuildTrialBalance(lines []domain.PostedLine, accounts map[string]domain.Account, from, to time.Time) *domain.TrialBalanceReport {
	byAccount := make(map[string]*domain.TrialBalanceRow)
	for _, l := range lines {
		row, ok := byAccount[l.AccountID]
		if !ok {
			acc := accounts[l.AccountID]
			row = &domain.TrialBalanceRow{
				AccountID:   l.AccountID,
				AccountCode: acc.AccountCode,
				AccountName: acc.Name,
				AccountType: acc.AccountType,
				DebitTotal:  decimal.Zero,
				CreditTotal: decimal.Zero,
			}
			byAccount[l.AccountID] = row
		}
		if l.Side == domain.Debit {
			row.DebitTotal = row.DebitTotal.Add(l.Amount)
		} else {
			row.CreditTotal = row.CreditTotal.Add(l.Amount)
		}
	}

	rows := make([]domain.TrialBalanceRow, 0, len(byAccount))
	for _, row := range byAccount {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })

	debitTotal, creditTotal := decimal.Zero, decimal.Zero
	for _, row := range rows {
		debitTotal = debitTotal.Add(row.DebitTotal)
		creditTotal = creditTotal.Add(row.CreditTotal)
	}

	return &domain.TrialBalanceReport{
		From:        from,
		To:          to,
		Rows:        rows,
		DebitTotal:  debitTotal,
		CreditTotal: creditTotal,
		Balanced:    debitTotal.Equal(creditTotal),
		Difference:  debitTotal.Sub(creditTotal).Abs(),
	}
}

// periodKind selects daily or monthly bucketing.
type periodKind int

const (
	periodDaily periodKind = iota
	periodMonthly
)

// truncate normalizes to UTC before flooring so bucket keys compare equal
// regardless of the zone the store returned timestamps in.
func (k periodKind) truncate(t time.Time) time.Time {
	t = t.In(time.UTC)
	if k == periodDaily {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (k periodKind) next(t time.Time) time.Time {
	if k == periodDaily {
		return t.AddDate(0, 0, 1)
	}
	return t.AddDate(0, 1, 0)
}

func (k periodKind) label(t time.Time) string {
	if k == periodDaily {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01")
}

// BucketBalances folds posted lines into calendar buckets over [from, to].
// Every bucket in the window is emitted, with zero totals and a zero
// transaction count when no lines fall into it; the closing balance carries
// forward through empty buckets.
func bucketBalances(opening decimal.Decimal, lines []domain.PostedLine, accountType domain.AccountType, from, to time.Time, kind periodKind) []domain.PeriodBalanceRow {
	type bucket struct {
		debit  decimal.Decimal
		credit decimal.Decimal
		count  int
	}
	buckets := make(map[time.Time]*bucket)
	for _, l := range lines {
		key := kind.truncate(l.JournalDate)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{debit: decimal.Zero, credit: decimal.Zero}
			buckets[key] = b
		}
		if l.Side == domain.Debit {
			b.debit = b.debit.Add(l.Amount)
		} else {
			b.credit = b.credit.Add(l.Amount)
		}
		b.count++
	}

	rows := make([]domain.PeriodBalanceRow, 0)
	balance := opening
	end := kind.truncate(to)
	for cursor := kind.truncate(from); !cursor.After(end); cursor = kind.next(cursor) {
		debit, credit, count := decimal.Zero, decimal.Zero, 0
		if b, ok := buckets[cursor]; ok {
			debit, credit, count = b.debit, b.credit, b.count
		}
		balance = accounting.ClosingBalance(balance, debit, credit, accountType)
		rows = append(rows, domain.PeriodBalanceRow{
			PeriodStart:      cursor,
			Label:            kind.label(cursor),
			DebitTotal:       debit,
			CreditTotal:      credit,
			ClosingBalance:   balance,
			TransactionCount: count,
		})
	}
	return rows
}

// comparativeRows builds one section of a balance sheet or P&L. current and
// previous map account ID to the section amount; previous is nil when no
// comparative period was supplied. ChangePercent = difference/|previous|*100,
// omitted when previous is zero.
func comparativeRows(accountIDs []string, accounts map[string]domain.Account, current map[string]decimal.Decimal, previous map[string]decimal.Decimal) ([]domain.ComparativeRow, decimal.Decimal) {
	rows := make([]domain.ComparativeRow, 0, len(accountIDs))
	total := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for _, id := range accountIDs {
		acc := accounts[id]
		amount := current[id]
		row := domain.ComparativeRow{
			AccountID:   id,
			AccountCode: acc.AccountCode,
			AccountName: acc.Name,
			Amount:      amount,
		}
		if previous != nil {
			prev := previous[id]
			diff := amount.Sub(prev)
			row.PreviousAmount = &prev
			row.Difference = &diff
			if !prev.IsZero() {
				pct := diff.Div(prev.Abs()).Mul(hundred)
				row.ChangePercent = &pct
			}
		}
		total = total.Add(amount)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	return rows, total
}

// netAmountsByAccount folds posted lines into per-account normal-side net
// amounts (debit − credit for debit-normal accounts, reversed otherwise).
func netAmountsByAccount(lines []domain.PostedLine, accounts map[string]domain.Account) map[string]decimal.Decimal {
	nets := make(map[string]decimal.Decimal)
	for _, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			continue
		}
		signed, err := accounting.SignedAmount(l.Side, acc.AccountType, l.Amount)
		if err != nil {
			continue
		}
		nets[l.AccountID] = nets[l.AccountID].Add(signed)
	}
	return nets
}
