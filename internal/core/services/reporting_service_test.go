package services_test

import (
	"context"
	"testing"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/core/ledger"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockEntryRepo   *MockEntryRepository
	mockAuthorizer  *MockWorkplaceAuthorizer
	service         portssvc.ReportingService
	workplaceID     string
	userID          string
	cash            domain.Account
	revenue         domain.Account
	expense         domain.Account
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockAuthorizer = new(MockWorkplaceAuthorizer)
	s.service = services.NewReportingService(s.mockAccountRepo, s.mockEntryRepo,
		services.WithReportingAuthorizer(s.mockAuthorizer))

	s.workplaceID = uuid.NewString()
	s.userID = uuid.NewString()

	s.cash = domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "101",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	s.revenue = domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "401",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	s.expense = domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "501",
		Name:        "Rent Expense",
		AccountType: domain.Expense,
		IsActive:    true,
	}

	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, s.userID, s.workplaceID, domain.RoleReadOnly).Return(nil)
}

func (s *ReportingServiceTestSuite) twoBalancedEntries() []domain.JournalEntry {
	e1 := uuid.NewString()
	e2 := uuid.NewString()
	return []domain.JournalEntry{
		{
			EntryID: e1, WorkplaceID: s.workplaceID, Status: domain.Posted,
			Lines: []domain.JournalEntryLine{
				{LineID: uuid.NewString(), EntryID: e1, AccountID: s.cash.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
				{LineID: uuid.NewString(), EntryID: e1, AccountID: s.revenue.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
			},
		},
		{
			EntryID: e2, WorkplaceID: s.workplaceID, Status: domain.Posted,
			Lines: []domain.JournalEntryLine{
				{LineID: uuid.NewString(), EntryID: e2, AccountID: s.expense.AccountID, Debit: decimal.NewFromInt(40), Credit: decimal.Zero},
				{LineID: uuid.NewString(), EntryID: e2, AccountID: s.cash.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(40)},
			},
		},
	}
}

func (s *ReportingServiceTestSuite) TestTrialBalance_Success() {
	ctx := context.Background()
	accounts := []domain.Account{s.revenue, s.cash, s.expense}

	s.mockAccountRepo.On("ListAllAccounts", mock.Anything, s.workplaceID).Return(accounts, nil).Once()
	s.mockEntryRepo.On("ListEntriesWithLines", mock.Anything, s.workplaceID).Return(s.twoBalancedEntries(), nil).Once()

	rows, err := s.service.TrialBalance(ctx, s.workplaceID, s.userID)

	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	// Ordered by code regardless of chart order.
	s.Equal("101", rows[0].Code)
	s.Equal("401", rows[1].Code)
	s.Equal("501", rows[2].Code)

	s.True(rows[0].Debit.Equal(decimal.NewFromInt(100)))
	s.True(rows[0].Credit.Equal(decimal.NewFromInt(40)))
	s.True(rows[0].Net.Equal(decimal.NewFromInt(60)))

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, r := range rows {
		totalDebit = totalDebit.Add(r.Debit)
		totalCredit = totalCredit.Add(r.Credit)
	}
	s.True(totalDebit.Equal(totalCredit))
}

func (s *ReportingServiceTestSuite) TestTrialBalance_InconsistencyIsFatal() {
	ctx := context.Background()
	entryID := uuid.NewString()
	// A one-sided entry can only come from a defect or tampered storage.
	corrupt := []domain.JournalEntry{
		{
			EntryID: entryID, WorkplaceID: s.workplaceID, Status: domain.Posted,
			Lines: []domain.JournalEntryLine{
				{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.cash.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
				{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.revenue.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(25)},
			},
		},
	}

	s.mockAccountRepo.On("ListAllAccounts", mock.Anything, s.workplaceID).Return([]domain.Account{s.cash, s.revenue}, nil).Once()
	s.mockEntryRepo.On("ListEntriesWithLines", mock.Anything, s.workplaceID).Return(corrupt, nil).Once()

	rows, err := s.service.TrialBalance(ctx, s.workplaceID, s.userID)

	s.Require().Error(err)
	s.Nil(rows)
	s.ErrorIs(err, ledger.ErrAggregationInconsistency)
}

func (s *ReportingServiceTestSuite) TestTrialBalance_EmptyWorkplace() {
	ctx := context.Background()

	s.mockAccountRepo.On("ListAllAccounts", mock.Anything, s.workplaceID).Return([]domain.Account{s.cash}, nil).Once()
	s.mockEntryRepo.On("ListEntriesWithLines", mock.Anything, s.workplaceID).Return([]domain.JournalEntry{}, nil).Once()

	rows, err := s.service.TrialBalance(ctx, s.workplaceID, s.userID)

	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *ReportingServiceTestSuite) TestLedgerBalances_Success() {
	ctx := context.Background()

	s.mockAccountRepo.On("ListAllAccounts", mock.Anything, s.workplaceID).Return([]domain.Account{s.cash, s.revenue, s.expense}, nil).Once()
	s.mockEntryRepo.On("ListEntriesWithLines", mock.Anything, s.workplaceID).Return(s.twoBalancedEntries(), nil).Once()

	balances, err := s.service.LedgerBalances(ctx, s.workplaceID, s.userID)

	s.Require().NoError(err)
	s.Require().Len(balances, 3)
	cash := balances[s.cash.AccountID]
	s.True(cash.TotalDebit.Equal(decimal.NewFromInt(100)))
	s.True(cash.TotalCredit.Equal(decimal.NewFromInt(40)))
	s.True(cash.Net.Equal(decimal.NewFromInt(60)))
	revenue := balances[s.revenue.AccountID]
	s.True(revenue.Net.Equal(decimal.NewFromInt(100)))
}

func (s *ReportingServiceTestSuite) TestLedgerBalances_NotAuthorized() {
	ctx := context.Background()
	otherUser := uuid.NewString()
	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, otherUser, s.workplaceID, domain.RoleReadOnly).
		Return(apperrors.ErrForbidden).Once()

	balances, err := s.service.LedgerBalances(ctx, s.workplaceID, otherUser)

	s.Require().Error(err)
	s.Nil(balances)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockAccountRepo.AssertNotCalled(s.T(), "ListAllAccounts", mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
