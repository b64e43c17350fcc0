package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
	"github.com/finbooks/general_ledger_app/internal/middleware"
	"github.com/finbooks/general_ledger_app/internal/utils/formula"
)

// autoJournalService manages auto-journal patterns and evaluates them into
// draft journal entries. Generated entries go through the same journal entry
// service as manual ones, so every invariant is enforced in one place.
type autoJournalService struct {
	patternRepo portsrepo.AutoJournalPatternRepositoryFacade
	accountRepo portsrepo.AccountReader
	entrySvc    portssvc.JournalEntrySvcFacade
	clock       portssvc.Clock
}

// NewAutoJournalService creates the auto-journal service.
func NewAutoJournalService(patternRepo portsrepo.AutoJournalPatternRepositoryFacade, accountRepo portsrepo.AccountReader, entrySvc portssvc.JournalEntrySvcFacade, clock portssvc.Clock) portssvc.AutoJournalSvcFacade {
	return &autoJournalService{
		patternRepo: patternRepo,
		accountRepo: accountRepo,
		entrySvc:    entrySvc,
		clock:       clock,
	}
}

var _ portssvc.AutoJournalSvcFacade = (*autoJournalService)(nil)

func patternFromRequest(code string, name, sourceTable, description string, isActive bool, itemReqs []dto.PatternItemRequest, audit domain.AuditFields) domain.AutoJournalPattern {
	items := make([]domain.AutoJournalPatternItem, len(itemReqs))
	for i, ir := range itemReqs {
		items[i] = domain.AutoJournalPatternItem{
			LineNumber:          ir.LineNumber,
			DebitOrCredit:       ir.DebitOrCredit,
			AccountCode:         ir.AccountCode,
			AmountFormula:       ir.AmountFormula,
			DescriptionTemplate: ir.DescriptionTemplate,
		}
	}
	return domain.AutoJournalPattern{
		PatternCode:     code,
		PatternName:     name,
		SourceTableName: sourceTable,
		Description:     description,
		IsActive:        isActive,
		Items:           items,
		AuditFields:     audit,
	}
}

// validateItemAccounts checks that every account code referenced by the
// pattern resolves to a known account.
func (s *autoJournalService) validateItemAccounts(ctx context.Context, items []domain.AutoJournalPatternItem) error {
	for _, item := range items {
		if _, err := s.accountRepo.FindAccountByCode(ctx, item.AccountCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: unknown account code %s in item %d", apperrors.ErrValidation, item.AccountCode, item.LineNumber)
			}
			return err
		}
	}
	return nil
}

// CreatePattern registers a pattern.
func (s *autoJournalService) CreatePattern(ctx context.Context, req dto.CreatePatternRequest, userID string) (*domain.AutoJournalPattern, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	if _, err := s.patternRepo.FindPatternByCode(ctx, req.PatternCode); err == nil {
		return nil, fmt.Errorf("%w: pattern %s already exists", apperrors.ErrDuplicate, req.PatternCode)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	pattern := patternFromRequest(req.PatternCode, req.PatternName, req.SourceTableName, req.Description, req.IsActive, req.Items, audit)
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateItemAccounts(ctx, pattern.Items); err != nil {
		return nil, err
	}

	if err := s.patternRepo.SavePattern(ctx, pattern); err != nil {
		logger.Error("Failed to save pattern", slog.String("error", err.Error()), slog.String("pattern_code", req.PatternCode))
		return nil, err
	}

	logger.Info("Auto-journal pattern created", slog.String("pattern_code", pattern.PatternCode))
	return &pattern, nil
}

// UpdatePattern replaces a pattern's fields and items.
func (s *autoJournalService) UpdatePattern(ctx context.Context, patternCode string, req dto.UpdatePatternRequest, userID string) (*domain.AutoJournalPattern, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	existing, err := s.patternRepo.FindPatternByCode(ctx, patternCode)
	if err != nil {
		return nil, err
	}

	audit := existing.AuditFields
	audit.LastUpdatedAt = now
	audit.LastUpdatedBy = userID
	pattern := patternFromRequest(patternCode, req.PatternName, req.SourceTableName, req.Description, req.IsActive, req.Items, audit)
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateItemAccounts(ctx, pattern.Items); err != nil {
		return nil, err
	}

	if err := s.patternRepo.UpdatePattern(ctx, pattern); err != nil {
		logger.Error("Failed to update pattern", slog.String("error", err.Error()), slog.String("pattern_code", patternCode))
		return nil, err
	}

	logger.Info("Auto-journal pattern updated", slog.String("pattern_code", patternCode))
	return &pattern, nil
}

// DeletePattern removes a pattern.
func (s *autoJournalService) DeletePattern(ctx context.Context, patternCode string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.patternRepo.FindPatternByCode(ctx, patternCode); err != nil {
		return err
	}
	if err := s.patternRepo.DeletePattern(ctx, patternCode); err != nil {
		logger.Error("Failed to delete pattern", slog.String("error", err.Error()), slog.String("pattern_code", patternCode))
		return err
	}

	logger.Info("Auto-journal pattern deleted", slog.String("pattern_code", patternCode))
	return nil
}

// GetPattern retrieves a pattern with its items.
func (s *autoJournalService) GetPattern(ctx context.Context, patternCode string) (*domain.AutoJournalPattern, error) {
	return s.patternRepo.FindPatternByCode(ctx, patternCode)
}

// ListPatterns retrieves patterns, optionally only active ones.
func (s *autoJournalService) ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error) {
	return s.patternRepo.ListPatterns(ctx, activeOnly)
}

// Generate evaluates the pattern against the parameter map into a new DRAFT
// journal entry. The assembled entry is created through the journal entry
// service, so it is validated exactly like a manually created one.
func (s *autoJournalService) Generate(ctx context.Context, patternCode string, req dto.GenerateFromPatternRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pattern, err := s.patternRepo.FindPatternByCode(ctx, patternCode)
	if err != nil {
		return nil, err
	}
	if !pattern.IsActive {
		return nil, fmt.Errorf("%w: pattern %s is inactive", apperrors.ErrValidation, patternCode)
	}

	description := pattern.PatternName
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	lineReqs := make([]dto.JournalEntryLineRequest, 0, len(pattern.Items))
	debitTotal, creditTotal := domain.ZeroMoney(), domain.ZeroMoney()
	for _, item := range pattern.Items {
		value, err := formula.Evaluate(item.AmountFormula, req.Parameters)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", item.LineNumber, err)
		}
		amount, err := domain.NewMoney(value)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d formula %q produced a negative amount %s",
				apperrors.ErrValidation, item.LineNumber, item.AmountFormula, value.String())
		}

		account, err := s.accountRepo.FindAccountByCode(ctx, item.AccountCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown account code %s in item %d", apperrors.ErrValidation, item.AccountCode, item.LineNumber)
			}
			return nil, err
		}

		if item.DebitOrCredit == domain.Debit {
			debitTotal = debitTotal.Add(amount)
		} else {
			creditTotal = creditTotal.Add(amount)
		}
		lineReqs = append(lineReqs, dto.JournalEntryLineRequest{
			LineNumber:  item.LineNumber,
			AccountID:   account.AccountID,
			Side:        item.DebitOrCredit,
			Amount:      amount.Decimal(),
			Description: formula.RenderTemplate(item.DescriptionTemplate, req.Parameters),
		})
	}

	// A pattern must never yield an unbalanced entry, whatever the parameters.
	if !debitTotal.Equal(creditTotal) {
		return nil, fmt.Errorf("%w: pattern %s generated an unbalanced entry, debits %s credits %s",
			apperrors.ErrValidation, patternCode, debitTotal.String(), creditTotal.String())
	}

	entry, err := s.entrySvc.CreateEntry(ctx, dto.CreateJournalEntryRequest{
		JournalDate: req.JournalDate,
		Description: description,
		Lines:       lineReqs,
	}, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Journal entry generated from pattern",
		slog.String("pattern_code", patternCode),
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.Int("line_count", len(entry.Lines)))
	return entry, nil
}
