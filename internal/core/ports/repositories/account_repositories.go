package repositories

import (
	"context"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account metadata, including the
// account type that determines the normal balance side.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves a single account by its chart-of-accounts code.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
	// are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts, active and inactive.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates name, description and active flag.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
