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

const workplaceColumns = `workplace_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxWorkplaceRepository struct {
	pool *pgxpool.Pool
}

// newPgxWorkplaceRepository creates a new repository for workplace data.
func newPgxWorkplaceRepository(pool *pgxpool.Pool) portsrepo.WorkplaceRepository {
	return &PgxWorkplaceRepository{pool: pool}
}

// Ensure PgxWorkplaceRepository implements portsrepo.WorkplaceRepository
var _ portsrepo.WorkplaceRepository = (*PgxWorkplaceRepository)(nil)

func toDomainWorkplace(m models.Workplace) domain.Workplace {
	return domain.Workplace{
		WorkplaceID: m.WorkplaceID,
		Name:        m.Name,
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

func scanWorkplace(row pgx.Row) (models.Workplace, error) {
	var m models.Workplace
	err := row.Scan(
		&m.WorkplaceID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveWorkplace inserts a new workplace.
func (r *PgxWorkplaceRepository) SaveWorkplace(ctx context.Context, workplace domain.Workplace) error {
	query := `
		INSERT INTO workplaces (` + workplaceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		workplace.WorkplaceID,
		workplace.Name,
		workplace.Description,
		workplace.IsActive,
		workplace.CreatedAt,
		workplace.CreatedBy,
		workplace.LastUpdatedAt,
		workplace.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: workplace %s already exists", apperrors.ErrDuplicate, workplace.WorkplaceID)
			}
		}
		return fmt.Errorf("failed to save workplace %s: %w", workplace.WorkplaceID, err)
	}
	return nil
}

// FindWorkplaceByID retrieves a workplace by its ID.
func (r *PgxWorkplaceRepository) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	query := `
		SELECT ` + workplaceColumns + `
		FROM workplaces
		WHERE workplace_id = $1;
	`
	m, err := scanWorkplace(r.pool.QueryRow(ctx, query, workplaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workplace by ID %s: %w", workplaceID, err)
	}

	workplace := toDomainWorkplace(m)
	return &workplace, nil
}

// AddUserToWorkplace records a user's membership with a role; repeated calls
// update the stored role.
func (r *PgxWorkplaceRepository) AddUserToWorkplace(ctx context.Context, membership domain.UserWorkplace) error {
	query := `
		INSERT INTO user_workplaces (user_id, workplace_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, workplace_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.pool.Exec(ctx, query,
		membership.UserID,
		membership.WorkplaceID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add user %s to workplace %s: %w", membership.UserID, membership.WorkplaceID, err)
	}
	return nil
}

// FindUserWorkplaceRole retrieves the role a user holds in a workplace.
func (r *PgxWorkplaceRepository) FindUserWorkplaceRole(ctx context.Context, userID string, workplaceID string) (domain.UserWorkplaceRole, error) {
	query := `
		SELECT role
		FROM user_workplaces
		WHERE user_id = $1 AND workplace_id = $2;
	`
	var role string
	err := r.pool.QueryRow(ctx, query, userID, workplaceID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find role for user %s in workplace %s: %w", userID, workplaceID, err)
	}
	return domain.UserWorkplaceRole(role), nil
}

// ListWorkplacesByUser retrieves the workplaces a user belongs to, excluding
// memberships marked REMOVED.
func (r *PgxWorkplaceRepository) ListWorkplacesByUser(ctx context.Context, userID string) ([]domain.Workplace, error) {
	query := `
		SELECT w.workplace_id, w.name, w.description, w.is_active, w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
		FROM workplaces w
		JOIN user_workplaces uw ON uw.workplace_id = w.workplace_id
		WHERE uw.user_id = $1 AND uw.role != $2
		ORDER BY w.name;
	`
	rows, err := r.pool.Query(ctx, query, userID, string(domain.RoleRemoved))
	if err != nil {
		return nil, fmt.Errorf("failed to query workplaces for user %s: %w", userID, err)
	}
	defer rows.Close()

	workplaces := []domain.Workplace{}
	for rows.Next() {
		m, err := scanWorkplace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workplace row for user %s: %w", userID, err)
		}
		workplaces = append(workplaces, toDomainWorkplace(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workplace rows for user %s: %w", userID, err)
	}

	return workplaces, nil
}
