package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// WorkplaceAuthorizerSvc checks whether a user may act within a workplace.
type WorkplaceAuthorizerSvc interface {
	// AuthorizeUserAction verifies the user holds at least the required role.
	// Returns ErrNotFound when the workplace is unknown (or membership should
	// be obscured) and ErrForbidden when the role is insufficient.
	AuthorizeUserAction(ctx context.Context, userID string, workplaceID string, requiredRole domain.UserWorkplaceRole) error
}

// WorkplaceReaderSvc defines read operations for workplaces
type WorkplaceReaderSvc interface {
	// FindWorkplaceByID retrieves a workplace by its unique identifier.
	FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error)

	// ListUserWorkplaces retrieves the workplaces a user belongs to.
	ListUserWorkplaces(ctx context.Context, userID string) ([]domain.Workplace, error)
}

// WorkplaceWriterSvc defines write operations for workplaces
type WorkplaceWriterSvc interface {
	// CreateWorkplace creates a workplace and assigns the creator as admin.
	CreateWorkplace(ctx context.Context, name string, description string, creatorUserID string) (*domain.Workplace, error)

	// AddUserToWorkplace adds a user with a role; requires the adding user to
	// be an admin of the workplace.
	AddUserToWorkplace(ctx context.Context, addingUserID string, targetUserID string, workplaceID string, role domain.UserWorkplaceRole) error
}

// WorkplaceSvcFacade combines all workplace-related service interfaces.
type WorkplaceSvcFacade interface {
	WorkplaceAuthorizerSvc
	WorkplaceReaderSvc
	WorkplaceWriterSvc
}
