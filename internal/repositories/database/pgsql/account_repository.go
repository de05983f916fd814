package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, workplace_id, code, name, account_type, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		WorkplaceID: d.WorkplaceID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		WorkplaceID: m.WorkplaceID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.WorkplaceID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.WorkplaceID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account code %s already exists in workplace %s", apperrors.ErrDuplicate, m.Code, m.WorkplaceID)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1;
	`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountByCode retrieves an account by its user-facing code within a workplace.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, workplaceID string, code string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1 AND code = $2;
	`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, workplaceID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s in workplace %s: %w", code, workplaceID, err)
	}

	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[m.AccountID] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	// Not all requested IDs are necessarily present; the caller decides what a
	// miss means.
	return accountsMap, nil
}

// ListAccounts retrieves a paginated list of accounts for a specific workplace.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, workplaceID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1
		ORDER BY code
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, workplaceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for workplace %s: %w", workplaceID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for workplace %s: %w", workplaceID, err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for workplace %s: %w", workplaceID, err)
	}

	return accounts, nil
}

// ListAllAccounts retrieves the full chart of accounts of a workplace, active
// and inactive, ordered by code.
func (r *PgxAccountRepository) ListAllAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1
		ORDER BY code;
	`
	rows, err := r.pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart of accounts for workplace %s: %w", workplaceID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for workplace %s: %w", workplaceID, err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for workplace %s: %w", workplaceID, err)
	}

	return accounts, nil
}

// UpdateAccount updates mutable account fields. The account type and code are
// deliberately not part of the SET list.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasPostings reports whether any journal line references the account.
func (r *PgxAccountRepository) HasPostings(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check postings for account %s: %w", accountID, err)
	}
	return exists, nil
}
