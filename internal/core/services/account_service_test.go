package services_test

import (
	"context"
	"testing"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockAuthorizer  *MockWorkplaceAuthorizer
	service         portssvc.AccountSvcFacade
	workplaceID     string
	userID          string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockAuthorizer = new(MockWorkplaceAuthorizer)
	s.service = services.NewAccountService(s.mockAccountRepo,
		services.WithAccountAuthorizer(s.mockAuthorizer))

	s.workplaceID = uuid.NewString()
	s.userID = uuid.NewString()
}

func (s *AccountServiceTestSuite) expectAuthorized(role domain.UserWorkplaceRole) {
	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, s.userID, s.workplaceID, role).Return(nil)
}

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "101",
		Name:        "Cash",
		AccountType: domain.Asset,
		Description: "Petty cash and bank",
	}

	s.expectAuthorized(domain.RoleMember)
	s.mockAccountRepo.On("FindAccountByCode", mock.Anything, s.workplaceID, "101").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := s.service.CreateAccount(ctx, s.workplaceID, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.NotEmpty(created.AccountID)
	s.Equal(s.workplaceID, created.WorkplaceID)
	s.Equal("101", created.Code)
	s.Equal(domain.Asset, created.AccountType)
	s.True(created.IsActive)
	s.Equal(s.userID, created.CreatedBy)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "101",
		Name:        "Cash",
		AccountType: domain.Asset,
	}
	existing := &domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "101",
		Name:        "Old Cash",
		AccountType: domain.Asset,
	}

	s.expectAuthorized(domain.RoleMember)
	s.mockAccountRepo.On("FindAccountByCode", mock.Anything, s.workplaceID, "101").Return(existing, nil).Once()

	created, err := s.service.CreateAccount(ctx, s.workplaceID, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "999",
		Name:        "Mystery",
		AccountType: domain.AccountType("CONTRA"),
	}

	s.expectAuthorized(domain.RoleMember)

	created, err := s.service.CreateAccount(ctx, s.workplaceID, req, s.userID)

	s.Require().Error(err)
	s.Nil(created)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestGetAccountByID_ObscuresOtherWorkplace() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: uuid.NewString(),
		Code:        "101",
		AccountType: domain.Asset,
	}

	s.expectAuthorized(domain.RoleReadOnly)
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil).Once()

	got, err := s.service.GetAccountByID(ctx, s.workplaceID, account.AccountID, s.userID)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_PartialUpdate() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "101",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	newName := "Cash and Equivalents"

	s.expectAuthorized(domain.RoleMember)
	s.expectAuthorized(domain.RoleReadOnly)
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil).Once()
	s.mockAccountRepo.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == newName && acc.AccountType == domain.Asset
	})).Return(nil).Once()

	updated, err := s.service.UpdateAccount(ctx, s.workplaceID, account.AccountID, dto.UpdateAccountRequest{Name: &newName}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Equal(newName, updated.Name)
	s.Equal(s.userID, updated.LastUpdatedBy)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestUpdateAccount_NoFields() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "101",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	s.expectAuthorized(domain.RoleMember)
	s.expectAuthorized(domain.RoleReadOnly)
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil).Once()

	updated, err := s.service.UpdateAccount(ctx, s.workplaceID, account.AccountID, dto.UpdateAccountRequest{}, s.userID)

	s.Require().NoError(err)
	s.Equal("Cash", updated.Name)
	s.mockAccountRepo.AssertNotCalled(s.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: s.workplaceID,
		Code:        "101",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	s.expectAuthorized(domain.RoleMember)
	s.expectAuthorized(domain.RoleReadOnly)
	s.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil).Once()
	s.mockAccountRepo.On("HasPostings", mock.Anything, account.AccountID).Return(true, nil).Once()
	s.mockAccountRepo.On("DeactivateAccount", mock.Anything, account.AccountID, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, s.workplaceID, account.AccountID, s.userID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestListAccounts_EmptyWorkplace() {
	ctx := context.Background()

	s.expectAuthorized(domain.RoleReadOnly)
	s.mockAccountRepo.On("ListAccounts", mock.Anything, s.workplaceID, 20, 0).Return(nil, nil).Once()

	accounts, err := s.service.ListAccounts(ctx, s.workplaceID, s.userID, dto.ListAccountsParams{Limit: 20})

	s.Require().NoError(err)
	s.NotNil(accounts)
	s.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
