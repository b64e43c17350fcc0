package services

import (
	"context"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	"github.com/finbooks/general_ledger_app/internal/dto"
)

// AccountStructureSvcFacade manages the chart-of-accounts tree.
type AccountStructureSvcFacade interface {
	// Register creates a node, deriving its path and level from the parent.
	// Fails with apperrors.ErrCircularReference when the attachment would
	// introduce a cycle.
	Register(ctx context.Context, req dto.RegisterStructureRequest, userID string) (*domain.AccountStructure, error)

	// Reparent moves a node under a new parent, cycle-checked against the new
	// parent's ancestor chain, and rewrites descendant paths and levels.
	Reparent(ctx context.Context, accountCode string, req dto.ReparentStructureRequest, userID string) (*domain.AccountStructure, error)

	// Remove deletes a node; apperrors.ErrChildrenExist when children remain.
	Remove(ctx context.Context, accountCode string) error

	// GetByCode retrieves one node.
	GetByCode(ctx context.Context, accountCode string) (*domain.AccountStructure, error)

	// List retrieves the whole tree in path order.
	List(ctx context.Context) ([]domain.AccountStructure, error)

	// HasCircularReference walks the proposed parent's ancestor chain looking
	// for candidateCode.
	HasCircularReference(ctx context.Context, candidateCode, proposedParentCode string) (bool, error)
}
