package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management. Services use
// it for check-then-act sequences (hierarchy cycle check + write) that the
// store must treat as a single atomic unit.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	JournalEntryRepo JournalEntryRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	StructureRepo    AccountStructureRepositoryFacade
	PatternRepo      AutoJournalPatternRepositoryFacade
}
