package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

// SignedAmount applies the account's normal-balance convention to an amount:
// DEBIT to ASSET/EXPENSE -> +, CREDIT to ASSET/EXPENSE -> -,
// DEBIT to LIABILITY/EQUITY/REVENUE -> -, CREDIT to LIABILITY/EQUITY/REVENUE -> +.
// Used everywhere a running or closing balance is accumulated so the sign
// convention stays in one place.
func SignedAmount(side domain.TransactionType, accountType domain.AccountType, amount decimal.Decimal) (decimal.Decimal, error) {
	if !accountType.Valid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	if side == accountType.NormalBalance() {
		return amount, nil
	}
	return amount.Neg(), nil
}

// SumSides totals the debit and credit sides of a set of posted lines.
func SumSides(lines []domain.PostedLine) (debitTotal, creditTotal decimal.Decimal) {
	debitTotal, creditTotal = decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.Side == domain.Debit {
			debitTotal = debitTotal.Add(l.Amount)
		} else {
			creditTotal = creditTotal.Add(l.Amount)
		}
	}
	return debitTotal, creditTotal
}

// ClosingBalance computes opening + debitTotal − creditTotal under the
// account's normal-balance rule.
func ClosingBalance(opening decimal.Decimal, debitTotal, creditTotal decimal.Decimal, accountType domain.AccountType) decimal.Decimal {
	if accountType.NormalBalance() == domain.Debit {
		return opening.Add(debitTotal).Sub(creditTotal)
	}
	return opening.Add(creditTotal).Sub(debitTotal)
}
