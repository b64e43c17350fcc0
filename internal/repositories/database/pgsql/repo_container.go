package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all PostgreSQL repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalEntryRepo: newPgxJournalEntryRepository(pool),
		AccountRepo:      newPgxAccountRepository(pool),
		StructureRepo:    newPgxAccountStructureRepository(pool),
		PatternRepo:      newPgxAutoJournalPatternRepository(pool),
	}
}
