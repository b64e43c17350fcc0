package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
)

// PgxAccountRepository persists account master data.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	SELECT account_id, account_code, name, account_type, COALESCE(description, ''), is_active,
		created_at, created_by, last_updated_at, last_updated_by
	FROM accounts
`

// FindAccountByID retrieves a single account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := scanAccount(r.Pool.QueryRow(ctx, accountColumns+` WHERE account_id = $1;`, accountID))
	if err != nil {
		return nil, mapError(err, "account "+accountID)
	}
	return account, nil
}

// FindAccountByCode retrieves a single account by its chart-of-accounts code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	account, err := scanAccount(r.Pool.QueryRow(ctx, accountColumns+` WHERE account_code = $1;`, accountCode))
	if err != nil {
		return nil, mapError(err, "account code "+accountCode)
	}
	return account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return accounts, nil
	}
	rows, err := r.Pool.Query(ctx, accountColumns+` WHERE account_id = ANY($1);`, accountIDs)
	if err != nil {
		return nil, mapError(err, "accounts by ids")
	}
	defer rows.Close()
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err, "scan account")
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate accounts")
	}
	return accounts, nil
}

// ListAccounts retrieves all accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, accountColumns+` ORDER BY account_code;`)
	if err != nil {
		return nil, mapError(err, "list accounts")
	}
	defer rows.Close()
	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err, "scan account")
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate accounts")
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (
			account_id, account_code, name, account_type, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.AccountCode,
		account.Name,
		account.AccountType,
		nullableString(account.Description),
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	return mapError(err, "insert account "+account.AccountCode)
}

// UpdateAccount updates name, description and active flag.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, description = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.Name,
		nullableString(account.Description),
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.AccountID,
	)
	if err != nil {
		return mapError(err, "update account "+account.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "account "+account.AccountID)
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(&account.AccountID, &account.AccountCode, &account.Name, &account.AccountType,
		&account.Description, &account.IsActive,
		&account.CreatedAt, &account.CreatedBy, &account.LastUpdatedAt, &account.LastUpdatedBy)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
