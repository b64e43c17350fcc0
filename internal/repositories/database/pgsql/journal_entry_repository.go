package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
)

// PgxJournalEntryRepository persists journal entries with their lines.
// Concurrency control is a compare-and-increment on the version column: the
// UPDATE carries "AND version = $expected" and bumps version in the same
// statement, so a stale caller matches zero rows and the stored row is left
// untouched.
type PgxJournalEntryRepository struct {
	BaseRepository
}

func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

// SaveEntry inserts a new entry or performs a version-checked update.
func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	if err := entry.ValidateForPersist(); err != nil {
		return nil, err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	if entry.JournalEntryID == "" {
		entry.JournalEntryID = uuid.NewString()
		entry.Version++
		insertQuery := `
			INSERT INTO journal_entries (
				journal_entry_id, journal_date, description, status, version,
				created_by, approved_by, approved_at, rejection_reason, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`
		_, err = tx.Exec(ctx, insertQuery,
			entry.JournalEntryID,
			entry.JournalDate,
			entry.Description,
			entry.Status,
			entry.Version,
			entry.CreatedBy,
			nullableString(entry.ApprovedBy),
			entry.ApprovedAt,
			nullableString(entry.RejectionReason),
			entry.CreatedAt,
			entry.UpdatedAt,
		)
		if err != nil {
			return nil, mapError(err, "insert journal entry")
		}
	} else {
		expected := entry.Version
		entry.Version++
		updateQuery := `
			UPDATE journal_entries
			SET journal_date = $1, description = $2, status = $3, version = version + 1,
				approved_by = $4, approved_at = $5, rejection_reason = $6, updated_at = $7
			WHERE journal_entry_id = $8 AND version = $9;
		`
		tag, err := tx.Exec(ctx, updateQuery,
			entry.JournalDate,
			entry.Description,
			entry.Status,
			nullableString(entry.ApprovedBy),
			entry.ApprovedAt,
			nullableString(entry.RejectionReason),
			entry.UpdatedAt,
			entry.JournalEntryID,
			expected,
		)
		if err != nil {
			return nil, mapError(err, "update journal entry "+entry.JournalEntryID)
		}
		if tag.RowsAffected() == 0 {
			return nil, r.staleOrMissing(ctx, tx, entry.JournalEntryID)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE journal_entry_id = $1;`, entry.JournalEntryID); err != nil {
			return nil, mapError(err, "replace journal entry lines")
		}
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (
			journal_entry_id, line_number, account_id, sub_account_code, side, amount, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range entry.Lines {
		_, err = tx.Exec(ctx, lineQuery,
			entry.JournalEntryID,
			line.LineNumber,
			line.AccountID,
			nullableString(line.SubAccountCode),
			line.Side,
			line.Amount.Decimal(),
			nullableString(line.Description),
		)
		if err != nil {
			return nil, mapError(err, fmt.Sprintf("insert journal entry line %d", line.LineNumber))
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// staleOrMissing distinguishes a version conflict from a deleted entry after
// an UPDATE/DELETE matched zero rows.
func (r *PgxJournalEntryRepository) staleOrMissing(ctx context.Context, tx pgx.Tx, journalEntryID string) error {
	var storedVersion int64
	err := tx.QueryRow(ctx, `SELECT version FROM journal_entries WHERE journal_entry_id = $1;`, journalEntryID).Scan(&storedVersion)
	if err != nil {
		return mapError(err, "journal entry "+journalEntryID)
	}
	return fmt.Errorf("%w: journal entry %s is at version %d", apperrors.ErrConcurrency, journalEntryID, storedVersion)
}

// DeleteEntry removes an entry and its lines, version-checked.
func (r *PgxJournalEntryRepository) DeleteEntry(ctx context.Context, journalEntryID string, version int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE journal_entry_id = $1;`, journalEntryID); err != nil {
		return mapError(err, "delete journal entry lines")
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE journal_entry_id = $1 AND version = $2;`, journalEntryID, version)
	if err != nil {
		return mapError(err, "delete journal entry "+journalEntryID)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, tx, journalEntryID)
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT journal_entry_id, journal_date, description, status, version,
			created_by, approved_by, approved_at, rejection_reason, created_at, updated_at
		FROM journal_entries
		WHERE journal_entry_id = $1;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		return nil, mapError(err, "journal entry "+journalEntryID)
	}

	lines, err := r.findLines(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func (r *PgxJournalEntryRepository) findLines(ctx context.Context, journalEntryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_number, account_id, COALESCE(sub_account_code, ''), side, amount, COALESCE(description, '')
		FROM journal_entry_lines
		WHERE journal_entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, mapError(err, "journal entry lines")
	}
	defer rows.Close()

	lines := make([]domain.JournalEntryLine, 0)
	for rows.Next() {
		var (
			line   domain.JournalEntryLine
			amount decimal.Decimal
		)
		if err := rows.Scan(&line.LineNumber, &line.AccountID, &line.SubAccountCode, &line.Side, &amount, &line.Description); err != nil {
			return nil, mapError(err, "scan journal entry line")
		}
		money, err := domain.NewMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: stored line amount invalid: %v", apperrors.ErrInternal, err)
		}
		line.Amount = money
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate journal entry lines")
	}
	return lines, nil
}

// ListEntries retrieves entries matching the query, newest journal date first.
// Lines are not populated; callers needing them fetch individual entries.
func (r *PgxJournalEntryRepository) ListEntries(ctx context.Context, q portsrepo.ListEntriesQuery) ([]domain.JournalEntry, error) {
	query := `
		SELECT journal_entry_id, journal_date, description, status, version,
			created_by, approved_by, approved_at, rejection_reason, created_at, updated_at
		FROM journal_entries
		WHERE ($1::text IS NULL OR status = $1)
			AND journal_date >= $2 AND journal_date <= $3
		ORDER BY journal_date DESC, journal_entry_id
		LIMIT $4 OFFSET $5;
	`
	var status *string
	if q.Status != nil {
		s := string(*q.Status)
		status = &s
	}
	rows, err := r.Pool.Query(ctx, query, status, q.From, q.To, q.Limit, q.Offset)
	if err != nil {
		return nil, mapError(err, "list journal entries")
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, mapError(err, "scan journal entry")
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate journal entries")
	}
	return entries, nil
}

// postedLineColumns selects line fields joined with the confirmed entry header.
const postedLineColumns = `
	SELECT l.journal_entry_id, e.journal_date, l.line_number, l.account_id,
		COALESCE(l.sub_account_code, ''), l.side, l.amount, COALESCE(l.description, ''), e.description
	FROM journal_entry_lines l
	JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id AND e.status = 'CONFIRMED'
`

// FindPostedLinesForAccount returns one account's posted lines in the window.
func (r *PgxJournalEntryRepository) FindPostedLinesForAccount(ctx context.Context, q portsrepo.PostedLineQuery) ([]domain.PostedLine, error) {
	query := postedLineColumns + `
		WHERE l.account_id = $1
			AND ($2::text IS NULL OR l.sub_account_code = $2)
			AND e.journal_date >= $3 AND e.journal_date <= $4
		ORDER BY e.journal_date, l.journal_entry_id, l.line_number
		LIMIT CASE WHEN $5 > 0 THEN $5 ELSE NULL END OFFSET $6;
	`
	rows, err := r.Pool.Query(ctx, query, q.AccountID, q.SubAccountCode, q.From, q.To, q.Limit, q.Offset)
	if err != nil {
		return nil, mapError(err, "posted lines for account "+q.AccountID)
	}
	return scanPostedLines(rows)
}

// FindPostedLinesByDateRange returns all posted lines in [from, to].
func (r *PgxJournalEntryRepository) FindPostedLinesByDateRange(ctx context.Context, from, to time.Time) ([]domain.PostedLine, error) {
	query := postedLineColumns + `
		WHERE e.journal_date >= $1 AND e.journal_date <= $2
		ORDER BY e.journal_date, l.journal_entry_id, l.line_number;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, mapError(err, "posted lines by date range")
	}
	return scanPostedLines(rows)
}

// SumPostedBeforeDate totals both sides of an account's posted lines strictly
// before the given date.
func (r *PgxJournalEntryRepository) SumPostedBeforeDate(ctx context.Context, accountID string, subAccountCode *string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id AND e.status = 'CONFIRMED'
		WHERE l.account_id = $1
			AND ($2::text IS NULL OR l.sub_account_code = $2)
			AND e.journal_date < $3;
	`
	var debitTotal, creditTotal decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID, subAccountCode, before).Scan(&debitTotal, &creditTotal)
	if err != nil {
		return decimal.Zero, decimal.Zero, mapError(err, "sum posted lines before date")
	}
	return debitTotal, creditTotal, nil
}

func scanPostedLines(rows pgx.Rows) ([]domain.PostedLine, error) {
	defer rows.Close()
	lines := make([]domain.PostedLine, 0)
	for rows.Next() {
		var l domain.PostedLine
		if err := rows.Scan(&l.JournalEntryID, &l.JournalDate, &l.LineNumber, &l.AccountID,
			&l.SubAccountCode, &l.Side, &l.Amount, &l.Description, &l.EntryDescription); err != nil {
			return nil, mapError(err, "scan posted line")
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate posted lines")
	}
	return lines, nil
}

// scanEntry reads an entry header from a row.
func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		entry           domain.JournalEntry
		approvedBy      *string
		rejectionReason *string
	)
	err := row.Scan(&entry.JournalEntryID, &entry.JournalDate, &entry.Description, &entry.Status, &entry.Version,
		&entry.CreatedBy, &approvedBy, &entry.ApprovedAt, &rejectionReason, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if approvedBy != nil {
		entry.ApprovedBy = *approvedBy
	}
	if rejectionReason != nil {
		entry.RejectionReason = *rejectionReason
	}
	return &entry, nil
}

// nullableString maps "" to NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
