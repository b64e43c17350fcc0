package services

import (
	"context"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	"github.com/finbooks/general_ledger_app/internal/dto"
)

// AutoJournalSvcFacade manages auto-journal patterns and generation.
type AutoJournalSvcFacade interface {
	// CreatePattern registers a pattern; apperrors.ErrDuplicate on code collision.
	CreatePattern(ctx context.Context, req dto.CreatePatternRequest, userID string) (*domain.AutoJournalPattern, error)

	// UpdatePattern replaces a pattern's fields and items.
	UpdatePattern(ctx context.Context, patternCode string, req dto.UpdatePatternRequest, userID string) (*domain.AutoJournalPattern, error)

	// DeletePattern removes a pattern.
	DeletePattern(ctx context.Context, patternCode string) error

	// GetPattern retrieves a pattern with its items.
	GetPattern(ctx context.Context, patternCode string) (*domain.AutoJournalPattern, error)

	// ListPatterns retrieves patterns, optionally only active ones.
	ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error)

	// Generate evaluates the pattern against the parameter map into a new
	// DRAFT entry, validated exactly like a manually created one. Fails with
	// apperrors.ErrFormulaEvaluation or apperrors.ErrValidation; never
	// produces an unbalanced entry.
	Generate(ctx context.Context, patternCode string, req dto.GenerateFromPatternRequest, userID string) (*domain.JournalEntry, error)
}
