package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

// PatternItemRequest is one template line of a pattern.
type PatternItemRequest struct {
	LineNumber          int                    `json:"lineNumber" binding:"required,min=1"`
	DebitOrCredit       domain.TransactionType `json:"debitOrCredit" binding:"required,oneof=DEBIT CREDIT"`
	AccountCode         string                 `json:"accountCode" binding:"required"`
	AmountFormula       string                 `json:"amountFormula" binding:"required"`
	DescriptionTemplate string                 `json:"descriptionTemplate"`
}

// CreatePatternRequest registers a new auto-journal pattern.
type CreatePatternRequest struct {
	PatternCode     string               `json:"patternCode" binding:"required"`
	PatternName     string               `json:"patternName" binding:"required"`
	SourceTableName string               `json:"sourceTableName"`
	Description     string               `json:"description"`
	IsActive        bool                 `json:"isActive"`
	Items           []PatternItemRequest `json:"items" binding:"required,min=2,dive"`
}

// UpdatePatternRequest replaces a pattern's fields and items.
type UpdatePatternRequest struct {
	PatternName     string               `json:"patternName" binding:"required"`
	SourceTableName string               `json:"sourceTableName"`
	Description     string               `json:"description"`
	IsActive        bool                 `json:"isActive"`
	Items           []PatternItemRequest `json:"items" binding:"required,min=2,dive"`
}

// GenerateFromPatternRequest evaluates a pattern into a DRAFT journal entry.
type GenerateFromPatternRequest struct {
	JournalDate time.Time                  `json:"journalDate" binding:"required"`
	Description *string                    `json:"description"`
	Parameters  map[string]decimal.Decimal `json:"parameters" binding:"required"`
}
