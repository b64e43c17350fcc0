package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
	"github.com/finbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/core/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
)

type JournalEntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockJournalEntryRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalEntrySvcFacade
	now             time.Time
	cashAccount     domain.Account
	salesAccount    domain.Account
	userID          string
}

func (s *JournalEntryServiceTestSuite) SetupTest() {
	s.mockEntryRepo = new(MockJournalEntryRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.now = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	s.service = services.NewJournalEntryService(s.mockEntryRepo, s.mockAccountRepo, fixedClock{t: s.now}, nil)

	s.userID = uuid.NewString()
	s.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	s.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: "4000",
		Name:        "Sales",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
}

func (s *JournalEntryServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		s.cashAccount.AccountID:  s.cashAccount,
		s.salesAccount.AccountID: s.salesAccount,
	}
}

func (s *JournalEntryServiceTestSuite) createRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		JournalDate: s.now,
		Description: "Cash sale",
		Lines: []dto.JournalEntryLineRequest{
			{LineNumber: 1, AccountID: s.cashAccount.AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(500)},
			{LineNumber: 2, AccountID: s.salesAccount.AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(500)},
		},
	}
}

func (s *JournalEntryServiceTestSuite) TestCreateEntry_Success() {
	req := s.createRequest()
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.accountsMap(), nil).Once()
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusDraft && e.Version == 0 && len(e.Lines) == 2
	})).Return(&domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		Status:         domain.StatusDraft,
		Version:        1,
	}, nil).Once()

	saved, err := s.service.CreateEntry(context.Background(), req, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), saved.Version)
	s.mockEntryRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *JournalEntryServiceTestSuite) TestCreateEntry_InactiveAccount() {
	req := s.createRequest()
	inactive := s.salesAccount
	inactive.IsActive = false
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(map[string]domain.Account{
		s.cashAccount.AccountID:  s.cashAccount,
		s.salesAccount.AccountID: inactive,
	}, nil).Once()

	_, err := s.service.CreateEntry(context.Background(), req, s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *JournalEntryServiceTestSuite) TestCreateEntry_UnknownAccount() {
	req := s.createRequest()
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(map[string]domain.Account{
		s.cashAccount.AccountID: s.cashAccount,
	}, nil).Once()

	_, err := s.service.CreateEntry(context.Background(), req, s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *JournalEntryServiceTestSuite) storedDraft(version int64) *domain.JournalEntry {
	entry, err := domain.NewJournalEntry(s.now, "Cash sale", s.userID, s.now)
	require.NoError(s.T(), err)
	l1, err := domain.NewJournalEntryLine(1, s.cashAccount.AccountID, domain.Debit, domain.MustMoney(decimal.NewFromInt(500)), "", "")
	require.NoError(s.T(), err)
	l2, err := domain.NewJournalEntryLine(2, s.salesAccount.AccountID, domain.Credit, domain.MustMoney(decimal.NewFromInt(500)), "", "")
	require.NoError(s.T(), err)
	entry, err = entry.WithLines([]domain.JournalEntryLine{l1, l2}, s.now)
	require.NoError(s.T(), err)
	entry.JournalEntryID = uuid.NewString()
	entry.Version = version
	return &entry
}

func (s *JournalEntryServiceTestSuite) TestUpdateEntry_StaleVersion() {
	// Two readers fetch version 3; the second writer must lose.
	stored := s.storedDraft(4)
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, stored.JournalEntryID).Return(stored, nil).Once()

	newDescription := "Amended description"
	_, err := s.service.UpdateEntry(context.Background(), stored.JournalEntryID, dto.UpdateJournalEntryRequest{
		Version:     3,
		Description: &newDescription,
	}, s.userID)

	assert.ErrorIs(s.T(), err, apperrors.ErrConcurrency)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *JournalEntryServiceTestSuite) TestUpdateEntry_Success() {
	stored := s.storedDraft(1)
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, stored.JournalEntryID).Return(stored, nil).Once()

	newDescription := "Amended description"
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Description == newDescription && e.Version == 1
	})).Return(&domain.JournalEntry{JournalEntryID: stored.JournalEntryID, Description: newDescription, Version: 2}, nil).Once()

	saved, err := s.service.UpdateEntry(context.Background(), stored.JournalEntryID, dto.UpdateJournalEntryRequest{
		Version:     1,
		Description: &newDescription,
	}, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), saved.Version)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *JournalEntryServiceTestSuite) TestDeleteEntry_OnlyDraft() {
	stored := s.storedDraft(1)
	submitted, err := stored.Submit(s.now)
	require.NoError(s.T(), err)
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, stored.JournalEntryID).Return(&submitted, nil).Once()

	err = s.service.DeleteEntry(context.Background(), stored.JournalEntryID, 1, s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidState)
	s.mockEntryRepo.AssertNotCalled(s.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalEntryServiceTestSuite) TestSubmitEntry_Success() {
	stored := s.storedDraft(1)
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, stored.JournalEntryID).Return(stored, nil).Once()
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusPendingApproval
	})).Return(&domain.JournalEntry{JournalEntryID: stored.JournalEntryID, Status: domain.StatusPendingApproval, Version: 2}, nil).Once()

	saved, err := s.service.SubmitEntry(context.Background(), stored.JournalEntryID, 1, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.StatusPendingApproval, saved.Status)
}

func (s *JournalEntryServiceTestSuite) TestApproveEntry_WrongState() {
	stored := s.storedDraft(1)
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, stored.JournalEntryID).Return(stored, nil).Once()

	_, err := s.service.ApproveEntry(context.Background(), stored.JournalEntryID, 1, "approver-1")
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidState)
}

func (s *JournalEntryServiceTestSuite) TestConfirmEntry_Success() {
	stored := s.storedDraft(2)
	pending, err := stored.Submit(s.now)
	require.NoError(s.T(), err)
	approved, err := pending.Approve("approver-1", s.now)
	require.NoError(s.T(), err)
	approved.Version = 2
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, stored.JournalEntryID).Return(&approved, nil).Once()
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusConfirmed
	})).Return(&domain.JournalEntry{JournalEntryID: stored.JournalEntryID, Status: domain.StatusConfirmed, Version: 3}, nil).Once()

	saved, err := s.service.ConfirmEntry(context.Background(), stored.JournalEntryID, 2, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.StatusConfirmed, saved.Status)
}

func (s *JournalEntryServiceTestSuite) TestRejectThenReopen() {
	stored := s.storedDraft(2)
	pending, err := stored.Submit(s.now)
	require.NoError(s.T(), err)
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, stored.JournalEntryID).Return(&pending, nil).Once()
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusRejected && e.RejectionReason == "wrong period"
	})).Return(&domain.JournalEntry{JournalEntryID: stored.JournalEntryID, Status: domain.StatusRejected, RejectionReason: "wrong period", Version: 3}, nil).Once()

	rejected, err := s.service.RejectEntry(context.Background(), stored.JournalEntryID, 2, "wrong period", s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.StatusRejected, rejected.Status)

	stored2 := *stored
	stored2.Status = domain.StatusRejected
	stored2.RejectionReason = "wrong period"
	stored2.Version = 3
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, stored.JournalEntryID).Return(&stored2, nil).Once()
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusDraft
	})).Return(&domain.JournalEntry{JournalEntryID: stored.JournalEntryID, Status: domain.StatusDraft, Version: 4}, nil).Once()

	reopened, err := s.service.ReopenEntry(context.Background(), stored.JournalEntryID, 3, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.StatusDraft, reopened.Status)
}

func (s *JournalEntryServiceTestSuite) TestListEntries_DefaultsLimit() {
	s.mockEntryRepo.On("ListEntries", mock.Anything, mock.MatchedBy(func(q portsrepo.ListEntriesQuery) bool {
		return q.Limit == 20
	})).Return([]domain.JournalEntry{}, nil).Once()

	_, err := s.service.ListEntries(context.Background(), dto.ListEntriesParams{From: s.now.AddDate(0, -1, 0), To: s.now})
	require.NoError(s.T(), err)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func TestJournalEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}
