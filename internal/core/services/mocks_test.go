package services_test

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

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

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, workplaceID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, workplaceID, code)
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

func (m *MockAccountRepository) ListAccounts(ctx context.Context, workplaceID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, workplaceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAllAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	args := m.Called(ctx, workplaceID)
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

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) HasPostings(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalEntryLine), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByWorkplace(ctx context.Context, workplaceID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, workplaceID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockEntryRepository) ListEntriesWithLines(ctx context.Context, workplaceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveReversal(ctx context.Context, reversing domain.JournalEntry, originalEntryID string, userID string, now time.Time) error {
	args := m.Called(ctx, reversing, originalEntryID, userID, now)
	return args.Error(0)
}

// --- Mock WorkplaceAuthorizer ---
type MockWorkplaceAuthorizer struct {
	mock.Mock
}

var _ portssvc.WorkplaceAuthorizerSvc = (*MockWorkplaceAuthorizer)(nil)

func (m *MockWorkplaceAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	args := m.Called(ctx, userID, workplaceID, requiredRole)
	return args.Error(0)
}
