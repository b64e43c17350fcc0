package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
)

// fixedClock pins service time so assertions are deterministic.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

var _ portssvc.Clock = fixedClock{}

// --- Mock JournalEntryRepository ---

type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntries(ctx context.Context, q portsrepo.ListEntriesQuery) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) DeleteEntry(ctx context.Context, journalEntryID string, version int64) error {
	args := m.Called(ctx, journalEntryID, version)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindPostedLinesForAccount(ctx context.Context, q portsrepo.PostedLineQuery) ([]domain.PostedLine, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLine), args.Error(1)
}

func (m *MockJournalEntryRepository) FindPostedLinesByDateRange(ctx context.Context, from, to time.Time) ([]domain.PostedLine, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLine), args.Error(1)
}

func (m *MockJournalEntryRepository) SumPostedBeforeDate(ctx context.Context, accountID string, subAccountCode *string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, subAccountCode, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock AccountStructureRepository ---

type MockStructureRepository struct {
	mock.Mock
}

var _ portsrepo.AccountStructureRepositoryFacade = (*MockStructureRepository)(nil)

func (m *MockStructureRepository) FindStructureByCode(ctx context.Context, accountCode string) (*domain.AccountStructure, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountStructure), args.Error(1)
}

func (m *MockStructureRepository) ListStructures(ctx context.Context) ([]domain.AccountStructure, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountStructure), args.Error(1)
}

func (m *MockStructureRepository) FindChildren(ctx context.Context, accountCode string) ([]domain.AccountStructure, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountStructure), args.Error(1)
}

func (m *MockStructureRepository) SaveStructure(ctx context.Context, structure domain.AccountStructure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

func (m *MockStructureRepository) UpdateStructure(ctx context.Context, structure domain.AccountStructure, descendants []domain.AccountStructure) error {
	args := m.Called(ctx, structure, descendants)
	return args.Error(0)
}

func (m *MockStructureRepository) DeleteStructure(ctx context.Context, accountCode string) error {
	args := m.Called(ctx, accountCode)
	return args.Error(0)
}

// --- Mock AutoJournalPatternRepository ---

type MockPatternRepository struct {
	mock.Mock
}

var _ portsrepo.AutoJournalPatternRepositoryFacade = (*MockPatternRepository)(nil)

func (m *MockPatternRepository) FindPatternByCode(ctx context.Context, patternCode string) (*domain.AutoJournalPattern, error) {
	args := m.Called(ctx, patternCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoJournalPattern), args.Error(1)
}

func (m *MockPatternRepository) ListPatterns(ctx context.Context, activeOnly bool) ([]domain.AutoJournalPattern, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoJournalPattern), args.Error(1)
}

func (m *MockPatternRepository) SavePattern(ctx context.Context, pattern domain.AutoJournalPattern) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockPatternRepository) UpdatePattern(ctx context.Context, pattern domain.AutoJournalPattern) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockPatternRepository) DeletePattern(ctx context.Context, patternCode string) error {
	args := m.Called(ctx, patternCode)
	return args.Error(0)
}

// --- Mock JournalEntryService (used by the auto-journal service) ---

type MockJournalEntryService struct {
	mock.Mock
}

var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

func (m *MockJournalEntryService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) UpdateEntry(ctx context.Context, journalEntryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) DeleteEntry(ctx context.Context, journalEntryID string, version int64, userID string) error {
	args := m.Called(ctx, journalEntryID, version, userID)
	return args.Error(0)
}

func (m *MockJournalEntryService) SubmitEntry(ctx context.Context, journalEntryID string, version int64, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID, version, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) ApproveEntry(ctx context.Context, journalEntryID string, version int64, approverUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID, version, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) RejectEntry(ctx context.Context, journalEntryID string, version int64, reason, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID, version, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) ReopenEntry(ctx context.Context, journalEntryID string, version int64, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID, version, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) ConfirmEntry(ctx context.Context, journalEntryID string, version int64, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID, version, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) GetEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
