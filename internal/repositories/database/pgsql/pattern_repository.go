package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
)

// PgxAutoJournalPatternRepository persists auto-journal patterns and their items.
type PgxAutoJournalPatternRepository struct {
	BaseRepository
}

func newPgxAutoJournalPatternRepository(pool *pgxpool.Pool) portsrepo.AutoJournalPatternRepositoryFacade {
	return &PgxAutoJournalPatternRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AutoJournalPatternRepositoryFacade = (*PgxAutoJournalPatternRepository)(nil)

const patternColumns = `
	SELECT pattern_code, pattern_name, source_table_name, COALESCE(description, ''), is_active,
		created_at, created_by, last_updated_at, last_updated_by
	FROM auto_journal_patterns
`

// FindPatternByCode retrieves a pattern with its items.
func (r *PgxAutoJournalPatternRepository) FindPatternByCode(ctx context.Context, patternCode string) (*domain.AutoJournalPattern, error) {
	pattern, err := scanPattern(r.Pool.QueryRow(ctx, patternColumns+` WHERE pattern_code = $1;`, patternCode))
	if err != nil {
		return nil, mapError(err, "auto-journal pattern "+patternCode)
	}
	items, err := r.findItems(ctx, patternCode)
	if err != nil {
		return nil, err
	}
	pattern.Items = items
	return pattern, nil
}

// ListPatterns retrieves all patterns with their items, optionally only active ones.
func (r *PgxAutoJournalPatternRepository) ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error) {
	rows, err := r.Pool.Query(ctx, patternColumns+` WHERE NOT $1 OR is_active ORDER BY pattern_code;`, activeOnly)
	if err != nil {
		return nil, mapError(err, "list auto-journal patterns")
	}
	defer rows.Close()
	patterns := make([]domain.AutoJournalPattern, 0)
	for rows.Next() {
		pattern, err := scanPattern(rows)
		if err != nil {
			return nil, mapError(err, "scan auto-journal pattern")
		}
		patterns = append(patterns, *pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate auto-journal patterns")
	}
	for i := range patterns {
		items, err := r.findItems(ctx, patterns[i].PatternCode)
		if err != nil {
			return nil, err
		}
		patterns[i].Items = items
	}
	return patterns, nil
}

func (r *PgxAutoJournalPatternRepository) findItems(ctx context.Context, patternCode string) ([]domain.AutoJournalPatternItem, error) {
	query := `
		SELECT line_number, debit_or_credit, account_code, amount_formula, COALESCE(description_template, '')
		FROM auto_journal_pattern_items
		WHERE pattern_code = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, patternCode)
	if err != nil {
		return nil, mapError(err, "auto-journal pattern items")
	}
	defer rows.Close()
	items := make([]domain.AutoJournalPatternItem, 0)
	for rows.Next() {
		var item domain.AutoJournalPatternItem
		if err := rows.Scan(&item.LineNumber, &item.DebitOrCredit, &item.AccountCode, &item.AmountFormula, &item.DescriptionTemplate); err != nil {
			return nil, mapError(err, "scan auto-journal pattern item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate auto-journal pattern items")
	}
	return items, nil
}

// SavePattern inserts a pattern and its items atomically.
func (r *PgxAutoJournalPatternRepository) SavePattern(ctx context.Context, pattern domain.AutoJournalPattern) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
		INSERT INTO auto_journal_patterns (
			pattern_code, pattern_name, source_table_name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		pattern.PatternCode,
		pattern.PatternName,
		pattern.SourceTableName,
		nullableString(pattern.Description),
		pattern.IsActive,
		pattern.CreatedAt,
		pattern.CreatedBy,
		pattern.LastUpdatedAt,
		pattern.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "insert auto-journal pattern "+pattern.PatternCode)
	}
	if err := insertPatternItems(ctx, tx, pattern); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdatePattern replaces a pattern's fields and items atomically.
func (r *PgxAutoJournalPatternRepository) UpdatePattern(ctx context.Context, pattern domain.AutoJournalPattern) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
		UPDATE auto_journal_patterns
		SET pattern_name = $1, source_table_name = $2, description = $3, is_active = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE pattern_code = $7;
	`
	tag, err := tx.Exec(ctx, query,
		pattern.PatternName,
		pattern.SourceTableName,
		nullableString(pattern.Description),
		pattern.IsActive,
		pattern.LastUpdatedAt,
		pattern.LastUpdatedBy,
		pattern.PatternCode,
	)
	if err != nil {
		return mapError(err, "update auto-journal pattern "+pattern.PatternCode)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "auto-journal pattern "+pattern.PatternCode)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM auto_journal_pattern_items WHERE pattern_code = $1;`, pattern.PatternCode); err != nil {
		return mapError(err, "replace auto-journal pattern items")
	}
	if err := insertPatternItems(ctx, tx, pattern); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeletePattern removes a pattern and its items.
func (r *PgxAutoJournalPatternRepository) DeletePattern(ctx context.Context, patternCode string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM auto_journal_pattern_items WHERE pattern_code = $1;`, patternCode); err != nil {
		return mapError(err, "delete auto-journal pattern items")
	}
	tag, err := tx.Exec(ctx, `DELETE FROM auto_journal_patterns WHERE pattern_code = $1;`, patternCode)
	if err != nil {
		return mapError(err, "delete auto-journal pattern "+patternCode)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "auto-journal pattern "+patternCode)
	}
	return r.Commit(ctx, tx)
}

func insertPatternItems(ctx context.Context, tx pgx.Tx, pattern domain.AutoJournalPattern) error {
	query := `
		INSERT INTO auto_journal_pattern_items (
			pattern_code, line_number, debit_or_credit, account_code, amount_formula, description_template
		)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range pattern.Items {
		_, err := tx.Exec(ctx, query,
			pattern.PatternCode,
			item.LineNumber,
			item.DebitOrCredit,
			item.AccountCode,
			item.AmountFormula,
			nullableString(item.DescriptionTemplate),
		)
		if err != nil {
			return mapError(err, fmt.Sprintf("insert auto-journal pattern item %d", item.LineNumber))
		}
	}
	return nil
}

func scanPattern(row pgx.Row) (*domain.AutoJournalPattern, error) {
	var pattern domain.AutoJournalPattern
	err := row.Scan(&pattern.PatternCode, &pattern.PatternName, &pattern.SourceTableName,
		&pattern.Description, &pattern.IsActive,
		&pattern.CreatedAt, &pattern.CreatedBy, &pattern.LastUpdatedAt, &pattern.LastUpdatedBy)
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}
