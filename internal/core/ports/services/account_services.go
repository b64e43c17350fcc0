package services

import (
	"context"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	"github.com/finbooks/general_ledger_app/internal/dto"
)

// AccountSvcFacade manages ledger accounts and their reporting metadata.
type AccountSvcFacade interface {
	// CreateAccount registers an account; apperrors.ErrDuplicate on code collision.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount edits name, description or active flag.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// GetAccountByID retrieves one account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
