package repositories

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// WorkplaceRepository defines persistence operations for workplaces and membership
type WorkplaceRepository interface {
	// SaveWorkplace persists a new workplace.
	SaveWorkplace(ctx context.Context, workplace domain.Workplace) error

	// FindWorkplaceByID retrieves a workplace by its unique identifier.
	FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error)

	// AddUserToWorkplace records a user's membership with a role.
	AddUserToWorkplace(ctx context.Context, membership domain.UserWorkplace) error

	// FindUserWorkplaceRole retrieves the role a user holds in a workplace.
	FindUserWorkplaceRole(ctx context.Context, userID string, workplaceID string) (domain.UserWorkplaceRole, error)

	// ListWorkplacesByUser retrieves the workplaces a user belongs to.
	ListWorkplacesByUser(ctx context.Context, userID string) ([]domain.Workplace, error)
}
