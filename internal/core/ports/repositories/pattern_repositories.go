package repositories

import (
	"context"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

// AutoJournalPatternReader defines read operations for auto-journal patterns.
type AutoJournalPatternReader interface {
	// FindPatternByCode retrieves a pattern with its items.
	FindPatternByCode(ctx context.Context, patternCode string) (*domain.AutoJournalPattern, error)

	// ListPatterns retrieves all patterns, optionally only active ones.
	ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error)
}

// AutoJournalPatternWriter defines write operations for auto-journal patterns.
type AutoJournalPatternWriter interface {
	// SavePattern inserts a pattern and its items; apperrors.ErrDuplicate on
	// code collision.
	SavePattern(ctx context.Context, pattern domain.AutoJournalPattern) error

	// UpdatePattern replaces a pattern's fields and items.
	UpdatePattern(ctx context.Context, pattern domain.AutoJournalPattern) error

	// DeletePattern removes a pattern and its items.
	DeletePattern(ctx context.Context, patternCode string) error
}

// AutoJournalPatternRepositoryFacade combines pattern repository interfaces.
type AutoJournalPatternRepositoryFacade interface {
	AutoJournalPatternReader
	AutoJournalPatternWriter
}
