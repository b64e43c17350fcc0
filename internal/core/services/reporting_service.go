package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/middleware"
)

// reportingService derives the balance sheet and profit-and-loss statements
// from posted lines plus account metadata. Like the ledger service it is
// read-only and recomputes on every call.
type reportingService struct {
	lineRepo    portsrepo.PostedLineReader
	accountRepo portsrepo.AccountReader
}

// NewReportingService creates the financial statement service.
func NewReportingService(lineRepo portsrepo.PostedLineReader, accountRepo portsrepo.AccountReader) portssvc.ReportingSvcFacade {
	return &reportingService{lineRepo: lineRepo, accountRepo: accountRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// sectionAmounts fetches posted lines in [from, to] and folds them into
// per-account net amounts, keyed by account ID, for accounts of the wanted types.
func (s *reportingService) sectionAmounts(ctx context.Context, accounts map[string]domain.Account, from, to time.Time) (map[string]decimal.Decimal, error) {
	lines, err := s.lineRepo.FindPostedLinesByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posted lines: %w", err)
	}
	return netAmountsByAccount(lines, accounts), nil
}

func (s *reportingService) allAccounts(ctx context.Context) (map[string]domain.Account, error) {
	list, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accounts := make(map[string]domain.Account, len(list))
	for _, acc := range list {
		accounts[acc.AccountID] = acc
	}
	return accounts, nil
}

// idsOfType selects, in stable order, the IDs of accounts carrying activity
// in either period, restricted to one account type.
func idsOfType(accounts map[string]domain.Account, accountType domain.AccountType, current, previous map[string]decimal.Decimal) []string {
	ids := make([]string, 0)
	for id, acc := range accounts {
		if acc.AccountType != accountType {
			continue
		}
		_, inCurrent := current[id]
		inPrevious := false
		if previous != nil {
			_, inPrevious = previous[id]
		}
		if inCurrent || inPrevious {
			ids = append(ids, id)
		}
	}
	return ids
}

// BalanceSheet groups ASSET/LIABILITY/EQUITY balances as of a date; the
// cumulative window starts at the zero time so all posted history counts.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time, comparativeAsOf *time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.allAccounts(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.sectionAmounts(ctx, accounts, time.Time{}, asOf)
	if err != nil {
		return nil, err
	}
	var previous map[string]decimal.Decimal
	if comparativeAsOf != nil {
		previous, err = s.sectionAmounts(ctx, accounts, time.Time{}, *comparativeAsOf)
		if err != nil {
			return nil, err
		}
	}

	assets, totalAssets := comparativeRows(idsOfType(accounts, domain.Asset, current, previous), accounts, current, previous)
	liabilities, totalLiabilities := comparativeRows(idsOfType(accounts, domain.Liability, current, previous), accounts, current, previous)
	equity, totalEquity := comparativeRows(idsOfType(accounts, domain.Equity, current, previous), accounts, current, previous)

	logger.Info("Balance sheet generated",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("asset_accounts", len(assets)),
		slog.Int("liability_accounts", len(liabilities)),
		slog.Int("equity_accounts", len(equity)))

	return &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
	}, nil
}

// ProfitAndLoss groups REVENUE/EXPENSE activity over [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time, comparative *portssvc.ComparativePeriod) (*domain.ProfitAndLossReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.allAccounts(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.sectionAmounts(ctx, accounts, from, to)
	if err != nil {
		return nil, err
	}
	var previous map[string]decimal.Decimal
	if comparative != nil {
		previous, err = s.sectionAmounts(ctx, accounts, comparative.From, comparative.To)
		if err != nil {
			return nil, err
		}
	}

	revenue, totalRevenue := comparativeRows(idsOfType(accounts, domain.Revenue, current, previous), accounts, current, previous)
	expenses, totalExpenses := comparativeRows(idsOfType(accounts, domain.Expense, current, previous), accounts, current, previous)

	logger.Info("Profit and loss generated",
		slog.String("from", from.Format(time.RFC3339)),
		slog.String("to", to.Format(time.RFC3339)),
		slog.Int("revenue_accounts", len(revenue)),
		slog.Int("expense_accounts", len(expenses)))

	return &domain.ProfitAndLossReport{
		From:          from,
		To:            to,
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetIncome:     totalRevenue.Sub(totalExpenses),
	}, nil
}
