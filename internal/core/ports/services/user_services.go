package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// UserSvcFacade defines operations for user management and authentication.
type UserSvcFacade interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// Authenticate verifies credentials and returns the user on success.
	Authenticate(ctx context.Context, username string, password string) (*domain.User, error)
}
