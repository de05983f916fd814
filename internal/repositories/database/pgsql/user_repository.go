package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, password_hash, name, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{pool: pool}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
}

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, username, password_hash, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.PasswordHash,
		user.Name,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: username %s already taken", apperrors.ErrDuplicate, user.Username)
			}
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by their ID, excluding soft-deleted users.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	user := toDomainUser(m)
	return &user, nil
}

// FindUserByUsername retrieves a user by their login name, excluding
// soft-deleted users.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 AND deleted_at IS NULL;
	`
	m, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username %s: %w", username, err)
	}

	user := toDomainUser(m)
	return &user, nil
}
