package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account, scoped to a workplace.
	GetAccountByID(ctx context.Context, workplaceID string, accountID string, userID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its user-facing code.
	GetAccountByCode(ctx context.Context, workplaceID string, code string, userID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts, all scoped to the workplace.
	GetAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts ordered by code.
	ListAccounts(ctx context.Context, workplaceID string, userID string, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount creates a new account after validating code uniqueness.
	CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates name/description/active status. The account type is
	// immutable: changing it would retroactively flip the normal-balance sign
	// of historical postings.
	UpdateAccount(ctx context.Context, workplaceID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-retires an account. Accounts referenced by posted
	// entries are never physically deleted.
	DeactivateAccount(ctx context.Context, workplaceID string, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
