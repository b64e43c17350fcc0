package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
	"github.com/finbooks/general_ledger_app/internal/middleware"
)

// journalEntryService implements the journal-entry command/query surface.
// Every mutation is a read-modify-write: load the entry, apply a pure domain
// transition, persist through the version-checked save. The repository's
// compare-and-increment is the source of truth for concurrency conflicts; the
// early version comparison here just fails fast on obviously stale callers.
type journalEntryService struct {
	entryRepo   portsrepo.JournalEntryRepositoryFacade
	accountRepo portsrepo.AccountReader
	clock       portssvc.Clock
	audit       portssvc.AuditRecorder
}

// NewJournalEntryService creates the journal entry service.
func NewJournalEntryService(entryRepo portsrepo.JournalEntryRepositoryFacade, accountRepo portsrepo.AccountReader, clock portssvc.Clock, audit portssvc.AuditRecorder) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		clock:       clock,
		audit:       audit,
	}
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// buildLines converts request lines into validated domain lines.
func buildLines(reqLines []dto.JournalEntryLineRequest) ([]domain.JournalEntryLine, error) {
	lines := make([]domain.JournalEntryLine, 0, len(reqLines))
	for _, lr := range reqLines {
		amount, err := domain.NewMoney(lr.Amount)
		if err != nil {
			return nil, err
		}
		line, err := domain.NewJournalEntryLine(lr.LineNumber, lr.AccountID, lr.Side, amount, lr.SubAccountCode, lr.Description)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// validateLineAccounts checks every referenced account exists and is active.
func (s *journalEntryService) validateLineAccounts(ctx context.Context, lines []domain.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		acc, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: unknown account %s", apperrors.ErrValidation, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

func (s *journalEntryService) recordAudit(ctx context.Context, action portssvc.AuditAction, entryID, actorID, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, portssvc.AuditEvent{
		Action:         action,
		JournalEntryID: entryID,
		ActorUserID:    actorID,
		Detail:         detail,
		OccurredAt:     s.clock.Now(),
	})
}

// CreateEntry creates a DRAFT entry, optionally with an initial line set.
func (s *journalEntryService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	entry, err := domain.NewJournalEntry(req.JournalDate, req.Description, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	if len(req.Lines) > 0 {
		lines, err := buildLines(req.Lines)
		if err != nil {
			return nil, err
		}
		if err := s.validateLineAccounts(ctx, lines); err != nil {
			return nil, err
		}
		entry, err = entry.WithLines(lines, now)
		if err != nil {
			return nil, err
		}
	}

	saved, err := s.entryRepo.SaveEntry(ctx, entry)
	if err != nil {
		logger.Error("Failed to save new journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created", slog.String("journal_entry_id", saved.JournalEntryID))
	s.recordAudit(ctx, portssvc.AuditCreated, saved.JournalEntryID, creatorUserID, "")
	return saved, nil
}

// loadForMutation fetches the entry and fails fast when the caller's version
// token is already stale.
func (s *journalEntryService) loadForMutation(ctx context.Context, journalEntryID string, version int64) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	if entry.Version != version {
		return nil, fmt.Errorf("%w: have version %d, caller sent %d", apperrors.ErrConcurrency, entry.Version, version)
	}
	return entry, nil
}

// UpdateEntry edits a DRAFT entry's date, description or lines.
func (s *journalEntryService) UpdateEntry(ctx context.Context, journalEntryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	entry, err := s.loadForMutation(ctx, journalEntryID, req.Version)
	if err != nil {
		return nil, err
	}

	candidate := *entry
	if req.JournalDate != nil {
		candidate, err = candidate.WithJournalDate(*req.JournalDate, now)
		if err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		candidate, err = candidate.WithDescription(*req.Description, now)
		if err != nil {
			return nil, err
		}
	}
	if req.Lines != nil {
		lines, err := buildLines(*req.Lines)
		if err != nil {
			return nil, err
		}
		if err := s.validateLineAccounts(ctx, lines); err != nil {
			return nil, err
		}
		candidate, err = candidate.WithLines(lines, now)
		if err != nil {
			return nil, err
		}
	}

	saved, err := s.entryRepo.SaveEntry(ctx, candidate)
	if err != nil {
		logger.Error("Failed to save journal entry update", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}

	logger.Info("Journal entry updated", slog.String("journal_entry_id", journalEntryID), slog.Int64("version", saved.Version))
	s.recordAudit(ctx, portssvc.AuditUpdated, journalEntryID, userID, "")
	return saved, nil
}

// DeleteEntry removes a DRAFT entry.
func (s *journalEntryService) DeleteEntry(ctx context.Context, journalEntryID string, version int64, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.loadForMutation(ctx, journalEntryID, version)
	if err != nil {
		return err
	}
	if !entry.IsEditable() {
		return fmt.Errorf("%w: cannot delete entry in status %s", apperrors.ErrInvalidState, entry.Status)
	}

	if err := s.entryRepo.DeleteEntry(ctx, journalEntryID, version); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return err
	}

	logger.Info("Journal entry deleted", slog.String("journal_entry_id", journalEntryID))
	s.recordAudit(ctx, portssvc.AuditDeleted, journalEntryID, userID, "")
	return nil
}

// transitionEntry runs one lifecycle verb end to end.
func (s *journalEntryService) transitionEntry(
	ctx context.Context,
	journalEntryID string,
	version int64,
	actorID string,
	action portssvc.AuditAction,
	apply func(domain.JournalEntry, time.Time) (domain.JournalEntry, error),
) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	entry, err := s.loadForMutation(ctx, journalEntryID, version)
	if err != nil {
		return nil, err
	}

	candidate, err := apply(*entry, now)
	if err != nil {
		return nil, err
	}

	saved, err := s.entryRepo.SaveEntry(ctx, candidate)
	if err != nil {
		logger.Error("Failed to persist status transition",
			slog.String("error", err.Error()),
			slog.String("journal_entry_id", journalEntryID),
			slog.String("target_status", string(candidate.Status)))
		return nil, err
	}

	logger.Info("Journal entry transitioned",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("status", string(saved.Status)),
		slog.Int64("version", saved.Version))
	s.recordAudit(ctx, action, journalEntryID, actorID, string(saved.Status))
	return saved, nil
}

// SubmitEntry moves DRAFT -> PENDING_APPROVAL after a balance re-check.
func (s *journalEntryService) SubmitEntry(ctx context.Context, journalEntryID string, version int64, userID string) (*domain.JournalEntry, error) {
	return s.transitionEntry(ctx, journalEntryID, version, userID, portssvc.AuditSubmitted,
		func(e domain.JournalEntry, now time.Time) (domain.JournalEntry, error) {
			return e.Submit(now)
		})
}

// ApproveEntry moves PENDING_APPROVAL -> APPROVED, recording the approver.
func (s *journalEntryService) ApproveEntry(ctx context.Context, journalEntryID string, version int64, approverUserID string) (*domain.JournalEntry, error) {
	return s.transitionEntry(ctx, journalEntryID, version, approverUserID, portssvc.AuditApproved,
		func(e domain.JournalEntry, now time.Time) (domain.JournalEntry, error) {
			return e.Approve(approverUserID, now)
		})
}

// RejectEntry moves PENDING_APPROVAL -> REJECTED, recording the reason.
func (s *journalEntryService) RejectEntry(ctx context.Context, journalEntryID string, version int64, reason, userID string) (*domain.JournalEntry, error) {
	return s.transitionEntry(ctx, journalEntryID, version, userID, portssvc.AuditRejected,
		func(e domain.JournalEntry, now time.Time) (domain.JournalEntry, error) {
			return e.Reject(reason, now)
		})
}

// ReopenEntry moves REJECTED -> DRAFT.
func (s *journalEntryService) ReopenEntry(ctx context.Context, journalEntryID string, version int64, userID string) (*domain.JournalEntry, error) {
	return s.transitionEntry(ctx, journalEntryID, version, userID, portssvc.AuditUpdated,
		func(e domain.JournalEntry, now time.Time) (domain.JournalEntry, error) {
			return e.Reopen(now)
		})
}

// ConfirmEntry moves APPROVED -> CONFIRMED.
func (s *journalEntryService) ConfirmEntry(ctx context.Context, journalEntryID string, version int64, userID string) (*domain.JournalEntry, error) {
	return s.transitionEntry(ctx, journalEntryID, version, userID, portssvc.AuditConfirmed,
		func(e domain.JournalEntry, now time.Time) (domain.JournalEntry, error) {
			return e.Confirm(now)
		})
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalEntryService) GetEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalEntryID, err)
	}
	return entry, nil
}

// ListEntries retrieves entries filtered by status and date range.
func (s *journalEntryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.entryRepo.ListEntries(ctx, portsrepo.ListEntriesQuery{
		Status: params.Status,
		From:   params.From,
		To:     params.To,
		Limit:  limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}
