package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
)

// ListEntriesQuery filters ListEntries. A nil Status matches all statuses.
type ListEntriesQuery struct {
	Status *domain.EntryStatus
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// PostedLineQuery selects confirmed lines for one account, optionally
// restricted to a sub-account, within [From, To].
type PostedLineQuery struct {
	AccountID      string
	SubAccountCode *string
	From           time.Time
	To             time.Time
	Limit          int
	Offset         int
}

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries matching the query, newest journal date first.
	ListEntries(ctx context.Context, q ListEntriesQuery) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries.
type JournalEntryWriter interface {
	// SaveEntry persists the entry and its lines atomically. An entry with no
	// ID is inserted; otherwise the update performs a compare-and-increment on
	// the version column and returns apperrors.ErrConcurrency on a stale
	// version, leaving the stored row untouched. The returned entry carries
	// the assigned ID and the incremented version.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry, version-checked like SaveEntry.
	DeleteEntry(ctx context.Context, journalEntryID string, version int64) error
}

// PostedLineReader feeds the ledger aggregation engine. Only CONFIRMED
// entries' lines are visible through it, in (journal date, entry, line
// number) order, from a consistent read snapshot.
type PostedLineReader interface {
	// FindPostedLinesForAccount returns the posted lines for one account in
	// the query window.
	FindPostedLinesForAccount(ctx context.Context, q PostedLineQuery) ([]domain.PostedLine, error)

	// FindPostedLinesByDateRange returns all posted lines in [from, to],
	// across accounts. Used by trial balance and the financial statements.
	FindPostedLinesByDateRange(ctx context.Context, from, to time.Time) ([]domain.PostedLine, error)

	// SumPostedBeforeDate totals the debit and credit sides of all posted
	// lines for the account strictly before the given date. This is the
	// opening-balance input of the ledger reports.
	SumPostedBeforeDate(ctx context.Context, accountID string, subAccountCode *string, before time.Time) (debitTotal, creditTotal decimal.Decimal, err error)
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	PostedLineReader
}

// JournalEntryRepositoryWithTx extends the facade with transaction capabilities.
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
