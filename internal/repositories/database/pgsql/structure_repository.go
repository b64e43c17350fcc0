package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
)

// PgxAccountStructureRepository persists the materialized-path hierarchy.
type PgxAccountStructureRepository struct {
	BaseRepository
}

func newPgxAccountStructureRepository(pool *pgxpool.Pool) portsrepo.AccountStructureRepositoryFacade {
	return &PgxAccountStructureRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountStructureRepositoryFacade = (*PgxAccountStructureRepository)(nil)

const structureColumns = `
	SELECT account_code, account_path, hierarchy_level, parent_account_code, display_order,
		created_at, created_by, last_updated_at, last_updated_by
	FROM account_structures
`

// FindStructureByCode retrieves one node.
func (r *PgxAccountStructureRepository) FindStructureByCode(ctx context.Context, accountCode string) (*domain.AccountStructure, error) {
	structure, err := scanStructure(r.Pool.QueryRow(ctx, structureColumns+` WHERE account_code = $1;`, accountCode))
	if err != nil {
		return nil, mapError(err, "account structure "+accountCode)
	}
	return structure, nil
}

// ListStructures retrieves all nodes ordered by path then display order.
func (r *PgxAccountStructureRepository) ListStructures(ctx context.Context) ([]domain.AccountStructure, error) {
	rows, err := r.Pool.Query(ctx, structureColumns+` ORDER BY account_path, display_order;`)
	if err != nil {
		return nil, mapError(err, "list account structures")
	}
	return scanStructures(rows)
}

// FindChildren retrieves the direct children of a node.
func (r *PgxAccountStructureRepository) FindChildren(ctx context.Context, accountCode string) ([]domain.AccountStructure, error) {
	rows, err := r.Pool.Query(ctx, structureColumns+` WHERE parent_account_code = $1 ORDER BY display_order, account_code;`, accountCode)
	if err != nil {
		return nil, mapError(err, "children of "+accountCode)
	}
	return scanStructures(rows)
}

// SaveStructure inserts a new node.
func (r *PgxAccountStructureRepository) SaveStructure(ctx context.Context, structure domain.AccountStructure) error {
	query := `
		INSERT INTO account_structures (
			account_code, account_path, hierarchy_level, parent_account_code, display_order,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		structure.AccountCode,
		structure.AccountPath,
		structure.HierarchyLevel,
		structure.ParentAccountCode,
		structure.DisplayOrder,
		structure.CreatedAt,
		structure.CreatedBy,
		structure.LastUpdatedAt,
		structure.LastUpdatedBy,
	)
	return mapError(err, "insert account structure "+structure.AccountCode)
}

// UpdateStructure rewrites a re-parented node and its recomputed descendants
// in one transaction, so a reader never sees a half-moved subtree.
func (r *PgxAccountStructureRepository) UpdateStructure(ctx context.Context, structure domain.AccountStructure, descendants []domain.AccountStructure) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
		UPDATE account_structures
		SET account_path = $1, hierarchy_level = $2, parent_account_code = $3, display_order = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE account_code = $7;
	`
	nodes := append([]domain.AccountStructure{structure}, descendants...)
	for _, node := range nodes {
		tag, err := tx.Exec(ctx, query,
			node.AccountPath,
			node.HierarchyLevel,
			node.ParentAccountCode,
			node.DisplayOrder,
			node.LastUpdatedAt,
			node.LastUpdatedBy,
			node.AccountCode,
		)
		if err != nil {
			return mapError(err, "update account structure "+node.AccountCode)
		}
		if tag.RowsAffected() == 0 {
			return mapError(pgx.ErrNoRows, "account structure "+node.AccountCode)
		}
	}
	return r.Commit(ctx, tx)
}

// DeleteStructure removes a childless node.
func (r *PgxAccountStructureRepository) DeleteStructure(ctx context.Context, accountCode string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM account_structures WHERE account_code = $1;`, accountCode)
	if err != nil {
		return mapError(err, "delete account structure "+accountCode)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "account structure "+accountCode)
	}
	return nil
}

func scanStructure(row pgx.Row) (*domain.AccountStructure, error) {
	var structure domain.AccountStructure
	err := row.Scan(&structure.AccountCode, &structure.AccountPath, &structure.HierarchyLevel,
		&structure.ParentAccountCode, &structure.DisplayOrder,
		&structure.CreatedAt, &structure.CreatedBy, &structure.LastUpdatedAt, &structure.LastUpdatedBy)
	if err != nil {
		return nil, err
	}
	return &structure, nil
}

func scanStructures(rows pgx.Rows) ([]domain.AccountStructure, error) {
	defer rows.Close()
	structures := make([]domain.AccountStructure, 0)
	for rows.Next() {
		structure, err := scanStructure(rows)
		if err != nil {
			return nil, mapError(err, "scan account structure")
		}
		structures = append(structures, *structure)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate account structures")
	}
	return structures, nil
}
