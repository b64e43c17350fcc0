package repositories

import (
	"context"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

// AccountStructureReader defines read operations for the chart-of-accounts tree.
type AccountStructureReader interface {
	// FindStructureByCode retrieves one node.
	FindStructureByCode(ctx context.Context, accountCode string) (*domain.AccountStructure, error)

	// ListStructures retrieves all nodes ordered by path then display order.
	ListStructures(ctx context.Context) ([]domain.AccountStructure, error)

	// FindChildren retrieves the direct children of a node.
	FindChildren(ctx context.Context, accountCode string) ([]domain.AccountStructure, error)
}

// AccountStructureWriter defines write operations for the tree. The cycle
// check performed by the service and the subsequent write must execute as one
// atomic unit, which these implementations guarantee via a transaction.
type AccountStructureWriter interface {
	// SaveStructure inserts a new node.
	SaveStructure(ctx context.Context, structure domain.AccountStructure) error

	// UpdateStructure rewrites a node after re-parenting, together with the
	// recomputed paths and levels of its descendants.
	UpdateStructure(ctx context.Context, structure domain.AccountStructure, descendants []domain.AccountStructure) error

	// DeleteStructure removes a childless node.
	DeleteStructure(ctx context.Context, accountCode string) error
}

// AccountStructureRepositoryFacade combines structure repository interfaces.
type AccountStructureRepositoryFacade interface {
	AccountStructureReader
	AccountStructureWriter
}
