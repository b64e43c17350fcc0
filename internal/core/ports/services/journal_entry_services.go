package services

import (
	"context"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	"github.com/finbooks/general_ledger_app/internal/dto"
)

// JournalEntrySvcFacade exposes the journal-entry command/query surface.
// Every mutation takes the caller's version token; a stale token surfaces as
// apperrors.ErrConcurrency and the stored entry is left untouched.
type JournalEntrySvcFacade interface {
	// CreateEntry creates a DRAFT entry, optionally with an initial line set.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry edits a DRAFT entry's date, description or lines.
	UpdateEntry(ctx context.Context, journalEntryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a DRAFT entry.
	DeleteEntry(ctx context.Context, journalEntryID string, version int64, userID string) error

	// SubmitEntry moves DRAFT -> PENDING_APPROVAL after a balance re-check.
	SubmitEntry(ctx context.Context, journalEntryID string, version int64, userID string) (*domain.JournalEntry, error)

	// ApproveEntry moves PENDING_APPROVAL -> APPROVED.
	ApproveEntry(ctx context.Context, journalEntryID string, version int64, approverUserID string) (*domain.JournalEntry, error)

	// RejectEntry moves PENDING_APPROVAL -> REJECTED, recording the reason.
	RejectEntry(ctx context.Context, journalEntryID string, version int64, reason, userID string) (*domain.JournalEntry, error)

	// ReopenEntry moves REJECTED -> DRAFT, returning authoring control.
	ReopenEntry(ctx context.Context, journalEntryID string, version int64, userID string) (*domain.JournalEntry, error)

	// ConfirmEntry moves APPROVED -> CONFIRMED; the entry becomes immutable
	// and visible to ledger aggregation.
	ConfirmEntry(ctx context.Context, journalEntryID string, version int64, userID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries filtered by status and date range.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error)
}
