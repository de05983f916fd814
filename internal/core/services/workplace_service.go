package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

// workplaceService implements the WorkplaceSvcFacade interface
type workplaceService struct {
	BaseService
	workplaceRepo portsrepo.WorkplaceRepository
}

// NewWorkplaceService creates a new workplace service
func NewWorkplaceService(repo portsrepo.WorkplaceRepository) portssvc.WorkplaceSvcFacade {
	return &workplaceService{
		workplaceRepo: repo,
	}
}

// Ensure workplaceService implements the WorkplaceSvcFacade interface
var _ portssvc.WorkplaceSvcFacade = (*workplaceService)(nil)

func (s *workplaceService) CreateWorkplace(ctx context.Context, name string, description string, creatorUserID string) (*domain.Workplace, error) {
	now := time.Now()
	workplace := domain.Workplace{
		WorkplaceID: uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workplaceRepo.SaveWorkplace(ctx, workplace); err != nil {
		s.LogError(ctx, err, "Failed to save workplace",
			slog.String("workplace_id", workplace.WorkplaceID))
		return nil, err
	}

	// The creator administers their own workplace.
	membership := domain.UserWorkplace{
		UserID:      creatorUserID,
		WorkplaceID: workplace.WorkplaceID,
		Role:        domain.RoleAdmin,
		JoinedAt:    now,
	}
	if err := s.workplaceRepo.AddUserToWorkplace(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator to workplace",
			slog.String("user_id", creatorUserID),
			slog.String("workplace_id", workplace.WorkplaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Workplace created successfully",
		slog.String("workplace_id", workplace.WorkplaceID),
		slog.String("creator_user_id", creatorUserID))
	return &workplace, nil
}

func (s *workplaceService) FindWorkplaceByID(ctx context.Context, workplaceID string) (*domain.Workplace, error) {
	workplace, err := s.workplaceRepo.FindWorkplaceByID(ctx, workplaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workplace by ID",
				slog.String("workplace_id", workplaceID))
		}
		return nil, err
	}
	return workplace, nil
}

func (s *workplaceService) ListUserWorkplaces(ctx context.Context, userID string) ([]domain.Workplace, error) {
	workplaces, err := s.workplaceRepo.ListWorkplacesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workplaces for user",
			slog.String("user_id", userID))
		return nil, err
	}
	if workplaces == nil {
		return []domain.Workplace{}, nil
	}
	return workplaces, nil
}

func (s *workplaceService) AddUserToWorkplace(ctx context.Context, addingUserID string, targetUserID string, workplaceID string, role domain.UserWorkplaceRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, workplaceID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to add members to workplace",
			slog.String("adding_user_id", addingUserID),
			slog.String("workplace_id", workplaceID))
		return err
	}

	membership := domain.UserWorkplace{
		UserID:      targetUserID,
		WorkplaceID: workplaceID,
		Role:        role,
		JoinedAt:    time.Now(),
	}

	if err := s.workplaceRepo.AddUserToWorkplace(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to workplace",
			slog.String("target_user_id", targetUserID),
			slog.String("workplace_id", workplaceID))
		return err
	}

	s.LogInfo(ctx, "User added to workplace successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("workplace_id", workplaceID),
		slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a workplace
func (s *workplaceService) AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	role, err := s.workplaceRepo.FindUserWorkplaceRole(ctx, userID, workplaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of workplace",
				slog.String("user_id", userID),
				slog.String("workplace_id", workplaceID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user workplace role",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID))
		return err
	}

	if !hasRequiredRole(role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID),
			slog.String("user_role", string(role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role
func hasRequiredRole(userRole, requiredRole domain.UserWorkplaceRole) bool {
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}
