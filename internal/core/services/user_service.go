package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{
		userRepo: repo,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check username availability",
			slog.String("username", req.Username))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q already taken: %w", req.Username, apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.ErrInternal
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:       newUserID,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user",
			slog.String("username", req.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User created successfully",
		slog.String("user_id", user.UserID),
		slog.String("username", user.Username))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, username string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error for unknown user and bad password.
			return nil, apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user by username",
			slog.String("username", username))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch",
			slog.String("username", username))
		return nil, apperrors.ErrForbidden
	}

	return user, nil
}
