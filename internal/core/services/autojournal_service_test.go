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
	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
	"github.com/finbooks/general_ledger_app/internal/core/services"
	"github.com/finbooks/general_ledger_app/internal/dto"
)

type AutoJournalServiceTestSuite struct {
	suite.Suite
	mockPatternRepo *MockPatternRepository
	mockAccountRepo *MockAccountRepository
	mockEntrySvc    *MockJournalEntryService
	service         portssvc.AutoJournalSvcFacade
	now             time.Time
	userID          string
	cashAccount     domain.Account
	salesAccount    domain.Account
	taxAccount      domain.Account
}

func (s *AutoJournalServiceTestSuite) SetupTest() {
	s.mockPatternRepo = new(MockPatternRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockEntrySvc = new(MockJournalEntryService)
	s.now = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	s.service = services.NewAutoJournalService(s.mockPatternRepo, s.mockAccountRepo, s.mockEntrySvc, fixedClock{t: s.now})
	s.userID = uuid.NewString()

	s.cashAccount = domain.Account{AccountID: uuid.NewString(), AccountCode: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}
	s.salesAccount = domain.Account{AccountID: uuid.NewString(), AccountCode: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true}
	s.taxAccount = domain.Account{AccountID: uuid.NewString(), AccountCode: "2100", Name: "Sales tax payable", AccountType: domain.Liability, IsActive: true}
}

// salesPattern books gross cash against net sales and sales tax.
func (s *AutoJournalServiceTestSuite) salesPattern() *domain.AutoJournalPattern {
	return &domain.AutoJournalPattern{
		PatternCode: "SALES_WITH_TAX",
		PatternName: "Cash sale with sales tax",
		IsActive:    true,
		Items: []domain.AutoJournalPatternItem{
			{LineNumber: 1, DebitOrCredit: domain.Debit, AccountCode: "1000", AmountFormula: "amount + amount * tax_rate", DescriptionTemplate: "Cash received {amount}"},
			{LineNumber: 2, DebitOrCredit: domain.Credit, AccountCode: "4000", AmountFormula: "amount"},
			{LineNumber: 3, DebitOrCredit: domain.Credit, AccountCode: "2100", AmountFormula: "amount * tax_rate"},
		},
	}
}

func (s *AutoJournalServiceTestSuite) genRequest() dto.GenerateFromPatternRequest {
	return dto.GenerateFromPatternRequest{
		JournalDate: s.now,
		Parameters: map[string]decimal.Decimal{
			"amount":   decimal.NewFromInt(1000),
			"tax_rate": decimal.RequireFromString("0.1"),
		},
	}
}

func (s *AutoJournalServiceTestSuite) TestGenerate_Success() {
	pattern := s.salesPattern()
	s.mockPatternRepo.On("FindPatternByCode", mock.Anything, pattern.PatternCode).Return(pattern, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", mock.Anything, "1000").Return(&s.cashAccount, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", mock.Anything, "4000").Return(&s.salesAccount, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", mock.Anything, "2100").Return(&s.taxAccount, nil).Once()

	s.mockEntrySvc.On("CreateEntry", mock.Anything, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		if len(req.Lines) != 3 || req.Description != pattern.PatternName {
			return false
		}
		return req.Lines[0].Amount.Equal(decimal.NewFromInt(1100)) &&
			req.Lines[0].Description == "Cash received 1000" &&
			req.Lines[1].Amount.Equal(decimal.NewFromInt(1000)) &&
			req.Lines[2].Amount.Equal(decimal.NewFromInt(100))
	}), s.userID).Return(&domain.JournalEntry{JournalEntryID: uuid.NewString(), Status: domain.StatusDraft, Version: 1}, nil).Once()

	entry, err := s.service.Generate(context.Background(), pattern.PatternCode, s.genRequest(), s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.StatusDraft, entry.Status)
	s.mockEntrySvc.AssertExpectations(s.T())
}

func (s *AutoJournalServiceTestSuite) TestGenerate_InactivePattern() {
	pattern := s.salesPattern()
	pattern.IsActive = false
	s.mockPatternRepo.On("FindPatternByCode", mock.Anything, pattern.PatternCode).Return(pattern, nil).Once()

	_, err := s.service.Generate(context.Background(), pattern.PatternCode, s.genRequest(), s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockEntrySvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AutoJournalServiceTestSuite) TestGenerate_MissingParameter() {
	pattern := s.salesPattern()
	s.mockPatternRepo.On("FindPatternByCode", mock.Anything, pattern.PatternCode).Return(pattern, nil).Once()

	req := s.genRequest()
	delete(req.Parameters, "tax_rate")

	_, err := s.service.Generate(context.Background(), pattern.PatternCode, req, s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrFormulaEvaluation)
	s.mockEntrySvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AutoJournalServiceTestSuite) TestGenerate_NegativeAmount() {
	pattern := s.salesPattern()
	s.mockPatternRepo.On("FindPatternByCode", mock.Anything, pattern.PatternCode).Return(pattern, nil).Once()

	req := s.genRequest()
	req.Parameters["amount"] = decimal.NewFromInt(-500)

	_, err := s.service.Generate(context.Background(), pattern.PatternCode, req, s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *AutoJournalServiceTestSuite) TestGenerate_UnbalancedPattern() {
	pattern := s.salesPattern()
	// Break the credit side so the totals cannot match.
	pattern.Items[2].AmountFormula = "amount * tax_rate * 2"
	s.mockPatternRepo.On("FindPatternByCode", mock.Anything, pattern.PatternCode).Return(pattern, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", mock.Anything, mock.Anything).Return(&s.cashAccount, nil)

	_, err := s.service.Generate(context.Background(), pattern.PatternCode, s.genRequest(), s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockEntrySvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AutoJournalServiceTestSuite) TestCreatePattern_Validation() {
	s.mockPatternRepo.On("FindPatternByCode", mock.Anything, "ONE_ITEM").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreatePattern(context.Background(), dto.CreatePatternRequest{
		PatternCode: "ONE_ITEM",
		PatternName: "Too small",
		Items: []dto.PatternItemRequest{
			{LineNumber: 1, DebitOrCredit: domain.Debit, AccountCode: "1000", AmountFormula: "amount"},
		},
	}, s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockPatternRepo.AssertNotCalled(s.T(), "SavePattern", mock.Anything, mock.Anything)
}

func (s *AutoJournalServiceTestSuite) TestCreatePattern_Duplicate() {
	pattern := s.salesPattern()
	s.mockPatternRepo.On("FindPatternByCode", mock.Anything, pattern.PatternCode).Return(pattern, nil).Once()

	_, err := s.service.CreatePattern(context.Background(), dto.CreatePatternRequest{
		PatternCode: pattern.PatternCode,
		PatternName: "Duplicate",
		Items: []dto.PatternItemRequest{
			{LineNumber: 1, DebitOrCredit: domain.Debit, AccountCode: "1000", AmountFormula: "amount"},
			{LineNumber: 2, DebitOrCredit: domain.Credit, AccountCode: "4000", AmountFormula: "amount"},
		},
	}, s.userID)
	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicate)
}

func (s *AutoJournalServiceTestSuite) TestCreatePattern_Success() {
	s.mockPatternRepo.On("FindPatternByCode", mock.Anything, "SIMPLE").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("FindAccountByCode", mock.Anything, "1000").Return(&s.cashAccount, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", mock.Anything, "4000").Return(&s.salesAccount, nil).Once()
	s.mockPatternRepo.On("SavePattern", mock.Anything, mock.MatchedBy(func(p domain.AutoJournalPattern) bool {
		return p.PatternCode == "SIMPLE" && len(p.Items) == 2 && p.CreatedBy == s.userID
	})).Return(nil).Once()

	pattern, err := s.service.CreatePattern(context.Background(), dto.CreatePatternRequest{
		PatternCode: "SIMPLE",
		PatternName: "Simple cash sale",
		IsActive:    true,
		Items: []dto.PatternItemRequest{
			{LineNumber: 1, DebitOrCredit: domain.Debit, AccountCode: "1000", AmountFormula: "amount"},
			{LineNumber: 2, DebitOrCredit: domain.Credit, AccountCode: "4000", AmountFormula: "amount"},
		},
	}, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "SIMPLE", pattern.PatternCode)
	s.mockPatternRepo.AssertExpectations(s.T())
}

func TestAutoJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AutoJournalServiceTestSuite))
}
