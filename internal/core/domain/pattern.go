package domain

import (
	"fmt"
	"strings"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
)

// AutoJournalPatternItem is one template line of a pattern. AmountFormula is
// resolved against a caller-supplied named-parameter map at generation time;
// DescriptionTemplate supports {name} placeholders from the same map.
type AutoJournalPatternItem struct {
	LineNumber          int             `json:"lineNumber"`
	DebitOrCredit       TransactionType `json:"debitOrCredit"`
	AccountCode         string          `json:"accountCode"`
	AmountFormula       string          `json:"amountFormula"`
	DescriptionTemplate string          `json:"descriptionTemplate,omitempty"`
}

// AutoJournalPattern is a reusable template that generates a balanced journal
// entry from named parameters.
type AutoJournalPattern struct {
	PatternCode     string                   `json:"patternCode"` // Unique
	PatternName     string                   `json:"patternName"`
	SourceTableName string                   `json:"sourceTableName,omitempty"`
	Description     string                   `json:"description,omitempty"`
	IsActive        bool                     `json:"isActive"`
	Items           []AutoJournalPatternItem `json:"items"`
	AuditFields
}

// Validate checks the pattern's own shape: code and name present, at least two
// items with contiguous line numbers, each item carrying a side, account code
// and formula. Whether the generated entry balances can only be known at
// generation time.
func (p AutoJournalPattern) Validate() error {
	if strings.TrimSpace(p.PatternCode) == "" {
		return fmt.Errorf("%w: pattern code must not be blank", apperrors.ErrValidation)
	}
	if strings.TrimSpace(p.PatternName) == "" {
		return fmt.Errorf("%w: pattern name must not be blank", apperrors.ErrValidation)
	}
	if len(p.Items) < 2 {
		return fmt.Errorf("%w: pattern must have at least two items", apperrors.ErrValidation)
	}
	seen := make(map[int]struct{}, len(p.Items))
	for _, item := range p.Items {
		if item.LineNumber < 1 {
			return fmt.Errorf("%w: item line number must be >= 1", apperrors.ErrValidation)
		}
		if _, dup := seen[item.LineNumber]; dup {
			return fmt.Errorf("%w: duplicate item line number %d", apperrors.ErrValidation, item.LineNumber)
		}
		seen[item.LineNumber] = struct{}{}
		if item.DebitOrCredit != Debit && item.DebitOrCredit != Credit {
			return fmt.Errorf("%w: item %d side must be DEBIT or CREDIT", apperrors.ErrValidation, item.LineNumber)
		}
		if strings.TrimSpace(item.AccountCode) == "" {
			return fmt.Errorf("%w: item %d has no account code", apperrors.ErrValidation, item.LineNumber)
		}
		if strings.TrimSpace(item.AmountFormula) == "" {
			return fmt.Errorf("%w: item %d has no amount formula", apperrors.ErrValidation, item.LineNumber)
		}
	}
	for n := 1; n <= len(p.Items); n++ {
		if _, ok := seen[n]; !ok {
			return fmt.Errorf("%w: item line numbers must be contiguous 1..%d", apperrors.ErrValidation, len(p.Items))
		}
	}
	return nil
}
