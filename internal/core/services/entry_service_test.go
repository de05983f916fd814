package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/core/ledger"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo    *MockEntryRepository
	mockAccountRepo  *MockAccountRepository
	mockAuthorizer   *MockWorkplaceAuthorizer
	service          portssvc.EntrySvcFacade
	workplaceID      string
	userID           string
	cashAccount      domain.Account
	revenueAccount   domain.Account
	inactiveAccount  domain.Account
	foreignAccount   domain.Account
}

func (s *EntryServiceTestSuite) SetupTest() {
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockAuthorizer = new(MockWorkplaceAuthorizer)
	s.service = services.NewEntryService(s.mockEntryRepo, s.mockAccountRepo,
		services.WithEntryAuthorizer(s.mockAuthorizer))

	s.workplaceID = uuid.NewString()
	s.userID = uuid.NewString()

	s.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "101",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	s.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "401",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	s.inactiveAccount = domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "199",
		Name:        "Old Petty Cash",
		AccountType: domain.Asset,
		IsActive:    false,
	}
	s.foreignAccount = domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: uuid.NewString(),
		Code:        "101",
		Name:        "Other Tenant Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
}

func (s *EntryServiceTestSuite) expectAuthorized(role domain.UserWorkplaceRole) {
	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, s.userID, s.workplaceID, role).Return(nil).Once()
}

func (s *EntryServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Date:        "2025-06-15",
		Description: "Cash sale",
		Lines: []dto.EntryLineRequest{
			{AccountID: s.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: s.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (s *EntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := s.balancedRequest()

	s.expectAuthorized(domain.RoleMember)
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, []string{s.cashAccount.AccountID, s.revenueAccount.AccountID}).
		Return(map[string]domain.Account{
			s.cashAccount.AccountID:    s.cashAccount,
			s.revenueAccount.AccountID: s.revenueAccount,
		}, nil).Once()
	s.mockEntryRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	created, err := s.service.CreateEntry(ctx, s.workplaceID, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.NotEmpty(created.EntryID)
	s.Equal(s.workplaceID, created.WorkplaceID)
	s.Equal(domain.Posted, created.Status)
	s.Len(created.Lines, 2)
	for _, l := range created.Lines {
		s.NotEmpty(l.LineID)
		s.Equal(created.EntryID, l.EntryID)
	}
	s.mockEntryRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
	s.mockAuthorizer.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(99)

	s.expectAuthorized(domain.RoleMember)
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{
			s.cashAccount.AccountID:    s.cashAccount,
			s.revenueAccount.AccountID: s.revenueAccount,
		}, nil).Once()

	created, err := s.service.CreateEntry(ctx, s.workplaceID, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, ledger.ErrUnbalanced)
	var unbalanced *ledger.UnbalancedError
	s.Require().ErrorAs(err, &unbalanced)
	s.True(unbalanced.TotalDebit.Equal(decimal.NewFromInt(100)))
	s.True(unbalanced.TotalCredit.Equal(decimal.NewFromInt(99)))
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreateEntry_SingleLine() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Lines = req.Lines[:1]

	s.expectAuthorized(domain.RoleMember)

	created, err := s.service.CreateEntry(ctx, s.workplaceID, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, ledger.ErrInsufficientLines)
	s.mockAccountRepo.AssertNotCalled(s.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	phantomID := uuid.NewString()
	req := s.balancedRequest()
	req.Lines[1].AccountID = phantomID

	s.expectAuthorized(domain.RoleMember)
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{
			s.cashAccount.AccountID: s.cashAccount,
		}, nil).Once()

	created, err := s.service.CreateEntry(ctx, s.workplaceID, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, ledger.ErrUnknownAccount)
	var unknown *ledger.UnknownAccountError
	s.Require().ErrorAs(err, &unknown)
	s.Equal(phantomID, unknown.AccountID)
}

func (s *EntryServiceTestSuite) TestCreateEntry_AccountFromOtherWorkplaceTreatedAsUnknown() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Lines[1].AccountID = s.foreignAccount.AccountID

	s.expectAuthorized(domain.RoleMember)
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{
			s.cashAccount.AccountID:    s.cashAccount,
			s.foreignAccount.AccountID: s.foreignAccount,
		}, nil).Once()

	created, err := s.service.CreateEntry(ctx, s.workplaceID, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, ledger.ErrUnknownAccount)
}

func (s *EntryServiceTestSuite) TestCreateEntry_InactiveAccountRejected() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Lines[0].AccountID = s.inactiveAccount.AccountID

	s.expectAuthorized(domain.RoleMember)
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{
			s.inactiveAccount.AccountID: s.inactiveAccount,
			s.revenueAccount.AccountID:  s.revenueAccount,
		}, nil).Once()

	created, err := s.service.CreateEntry(ctx, s.workplaceID, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreateEntry_BadDate() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Date = "15/06/2025"

	s.expectAuthorized(domain.RoleMember)

	created, err := s.service.CreateEntry(ctx, s.workplaceID, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *EntryServiceTestSuite) TestCreateEntry_NotAuthorized() {
	ctx := context.Background()
	req := s.balancedRequest()

	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, s.userID, s.workplaceID, domain.RoleMember).
		Return(apperrors.ErrForbidden).Once()

	created, err := s.service.CreateEntry(ctx, s.workplaceID, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockAccountRepo.AssertNotCalled(s.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestGetEntryByID_ObscuresOtherWorkplace() {
	ctx := context.Background()
	entryID := uuid.NewString()
	foreignEntry := &domain.JournalEntry{
		EntryID:     entryID,
		WorkplaceID: uuid.NewString(),
		Status:      domain.Posted,
	}

	s.expectAuthorized(domain.RoleReadOnly)
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(foreignEntry, nil).Once()

	entry, err := s.service.GetEntryByID(ctx, s.workplaceID, entryID, s.userID)

	s.Require().Error(err)
	s.Nil(entry)
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *EntryServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:     entryID,
		WorkplaceID: s.workplaceID,
		Description: "Cash sale",
		Status:      domain.Posted,
	}
	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.cashAccount.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.revenueAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}

	s.expectAuthorized(domain.RoleMember)
	s.expectAuthorized(domain.RoleReadOnly)
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(original, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", mock.Anything, entryID).Return(lines, nil).Once()
	s.mockEntryRepo.On("SaveReversal", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), entryID, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reversing, err := s.service.ReverseEntry(ctx, s.workplaceID, entryID, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(reversing)
	s.Require().NotNil(reversing.OriginalEntryID)
	s.Equal(entryID, *reversing.OriginalEntryID)
	s.Require().Len(reversing.Lines, 2)
	// Debits and credits swap sides.
	s.True(reversing.Lines[0].Credit.Equal(decimal.NewFromInt(100)))
	s.True(reversing.Lines[0].Debit.IsZero())
	s.True(reversing.Lines[1].Debit.Equal(decimal.NewFromInt(100)))
	s.True(reversing.Lines[1].Credit.IsZero())
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversingID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:          entryID,
		WorkplaceID:      s.workplaceID,
		Status:           domain.Reversed,
		ReversingEntryID: &reversingID,
	}

	s.expectAuthorized(domain.RoleMember)
	s.expectAuthorized(domain.RoleReadOnly)
	s.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(original, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", mock.Anything, entryID).Return([]domain.JournalEntryLine{}, nil).Once()

	reversing, err := s.service.ReverseEntry(ctx, s.workplaceID, entryID, s.userID)

	s.Require().Error(err)
	s.Nil(reversing)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestListEntries_PopulatesLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entries := []domain.JournalEntry{
		{EntryID: entryID, WorkplaceID: s.workplaceID, Status: domain.Posted},
	}
	lines := map[string][]domain.JournalEntryLine{
		entryID: {
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.cashAccount.AccountID, Debit: decimal.NewFromInt(10)},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.revenueAccount.AccountID, Credit: decimal.NewFromInt(10)},
		},
	}

	s.expectAuthorized(domain.RoleReadOnly)
	s.mockEntryRepo.On("ListEntriesByWorkplace", mock.Anything, s.workplaceID, 20, (*string)(nil)).
		Return(entries, nil, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryIDs", mock.Anything, []string{entryID}).Return(lines, nil).Once()

	resp, err := s.service.ListEntries(ctx, s.workplaceID, s.userID, dto.ListEntriesParams{Limit: 20})

	s.Require().NoError(err)
	s.Require().NotNil(resp)
	s.Require().Len(resp.Entries, 1)
	s.Len(resp.Entries[0].Lines, 2)
	s.Nil(resp.NextToken)
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
