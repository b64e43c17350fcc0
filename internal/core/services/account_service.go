package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
	"github.com/finbooks/general_ledger_app/internal/middleware"
)

// accountService manages ledger accounts. Account type is fixed at creation;
// the normal balance side derives from it and must not drift under posted
// history.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	clock       portssvc.Clock
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, clock portssvc.Clock) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, clock: clock}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers an account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.clock.Now()

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %s", apperrors.ErrValidation, req.AccountType)
	}
	if _, err := s.accountRepo.FindAccountByCode(ctx, req.AccountCode); err == nil {
		return nil, fmt.Errorf("%w: account code %s already in use", apperrors.ErrDuplicate, req.AccountCode)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: req.AccountCode,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_code", req.AccountCode))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_code", account.AccountCode))
	return &account, nil
}

// UpdateAccount edits name, description or active flag.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = s.clock.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// GetAccountByID retrieves one account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountsByIDs retrieves accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves all accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}
