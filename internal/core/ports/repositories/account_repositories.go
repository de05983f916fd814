package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its user-facing code within a workplace.
	FindAccountByCode(ctx context.Context, workplaceID string, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given workplace,
	// ordered by code.
	ListAccounts(ctx context.Context, workplaceID string, limit int, offset int) ([]domain.Account, error)

	// ListAllAccounts retrieves the full chart of accounts for a workplace.
	// Used to build the registry snapshot for validation and reporting.
	ListAllAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details. The account type is
	// never updated through this method.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive (soft-retirement).
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// HasPostings reports whether any journal line references the account.
	HasPostings(ctx context.Context, accountID string) (bool, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
