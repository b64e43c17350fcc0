package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/middleware"
	"github.com/finbooks/general_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerService answers ledger aggregation queries. It performs no writes and
// relies on the store's consistent read snapshot; all computation happens in
// the pure functions of ledger_aggregation.go.
type ledgerService struct {
	lineRepo    portsrepo.PostedLineReader
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates the ledger aggregation service.
func NewLedgerService(lineRepo portsrepo.PostedLineReader, accountRepo portsrepo.AccountReader) portssvc.LedgerSvcFacade {
	return &ledgerService{lineRepo: lineRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// accountsByID loads account metadata for the given posted lines.
func (s *ledgerService) accountsForLines(ctx context.Context, lines []domain.PostedLine) (map[string]domain.Account, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for report: %w", err)
	}
	return accounts, nil
}

// openingBalance computes the signed sum of all posted lines strictly before
// the window start.
func (s *ledgerService) openingBalance(ctx context.Context, accountID string, subAccountCode *string, before time.Time, accountType domain.AccountType) (decimal.Decimal, error) {
	debit, credit, err := s.lineRepo.SumPostedBeforeDate(ctx, accountID, subAccountCode, before)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute opening balance: %w", err)
	}
	return accounting.ClosingBalance(decimal.Zero, debit, credit, accountType), nil
}

// TrialBalance builds per-account debit/credit subtotals over [from, to].
func (s *ledgerService) TrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lines, err := s.lineRepo.FindPostedLinesByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posted lines: %w", err)
	}
	accounts, err := s.accountsForLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	report := BuildTrialBalance(lines, accounts, from, to)
	logger.Info("Trial balance generated",
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("balanced", report.Balanced))
	return report, nil
}

// GeneralLedger builds the running-balance view of one account; a non-nil
// subAccountCode narrows it to a subsidiary ledger.
func (s *ledgerService) GeneralLedger(ctx context.Context, accountID string, subAccountCode *string, from, to time.Time, limit, offset int) (*domain.LedgerReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.openingBalance(ctx, accountID, subAccountCode, from, account.AccountType)
	if err != nil {
		return nil, err
	}

	// A page past the first starts mid-window: fold the skipped in-window
	// lines into the opening so opening + debits − credits still equals the
	// closing balance on every page.
	if offset > 0 {
		skipped, err := s.lineRepo.FindPostedLinesForAccount(ctx, portsrepo.PostedLineQuery{
			AccountID:      accountID,
			SubAccountCode: subAccountCode,
			From:           from,
			To:             to,
			Limit:          offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch posted lines for account %s: %w", accountID, err)
		}
		skippedDebit, skippedCredit := accounting.SumSides(skipped)
		opening = accounting.ClosingBalance(opening, skippedDebit, skippedCredit, account.AccountType)
	}

	lines, err := s.lineRepo.FindPostedLinesForAccount(ctx, portsrepo.PostedLineQuery{
		AccountID:      accountID,
		SubAccountCode: subAccountCode,
		From:           from,
		To:             to,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posted lines for account %s: %w", accountID, err)
	}

	ledgerLines, err := RunningBalanceLines(opening, lines, account.AccountType)
	if err != nil {
		return nil, err
	}
	debitTotal, creditTotal := accounting.SumSides(lines)
	closing := accounting.ClosingBalance(opening, debitTotal, creditTotal, account.AccountType)

	report := &domain.LedgerReport{
		AccountID:      accountID,
		AccountName:    account.Name,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Lines:          ledgerLines,
		DebitTotal:     debitTotal,
		CreditTotal:    creditTotal,
		ClosingBalance: closing,
	}
	if subAccountCode != nil {
		report.SubAccountCode = *subAccountCode
	}

	logger.Info("Ledger generated",
		slog.String("account_id", accountID),
		slog.Int("line_count", len(ledgerLines)))
	return report, nil
}

// DailyBalance buckets an account's activity by calendar day.
func (s *ledgerService) DailyBalance(ctx context.Context, accountID string, from, to time.Time) (*domain.PeriodBalanceReport, error) {
	return s.periodBalance(ctx, accountID, from, to, periodDaily)
}

// MonthlyBalance buckets an account's activity by calendar month.
func (s *ledgerService) MonthlyBalance(ctx context.Context, accountID string, from, to time.Time) (*domain.PeriodBalanceReport, error) {
	return s.periodBalance(ctx, accountID, from, to, periodMonthly)
}

func (s *ledgerService) periodBalance(ctx context.Context, accountID string, from, to time.Time, kind periodKind) (*domain.PeriodBalanceReport, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.openingBalance(ctx, accountID, nil, from, account.AccountType)
	if err != nil {
		return nil, err
	}

	lines, err := s.lineRepo.FindPostedLinesForAccount(ctx, portsrepo.PostedLineQuery{
		AccountID: accountID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posted lines for account %s: %w", accountID, err)
	}

	return &domain.PeriodBalanceReport{
		AccountID:      accountID,
		AccountName:    account.Name,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Rows:           bucketBalances(opening, lines, account.AccountType, from, to, kind),
	}, nil
}
