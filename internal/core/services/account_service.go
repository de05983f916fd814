package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/core/ledger"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer adds workplace authorizer dependency
func WithAccountAuthorizer(authorizer portssvc.WorkplaceAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.WorkplaceAuthorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create account",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	// Reject unknown account types up front; the oneof binding already covers
	// HTTP callers, this keeps the rule with the service for other entry points.
	if _, err := ledger.Classify(req.AccountType); err != nil {
		s.LogError(ctx, err, "Invalid account type",
			slog.String("account_type", string(req.AccountType)))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// Codes must be unique per workplace.
	existing, err := s.accountRepo.FindAccountByCode(ctx, workplaceID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness",
			slog.String("code", req.Code),
			slog.String("workplace_id", workplaceID))
		return nil, err
	}
	if existing != nil {
		s.LogDebug(ctx, "Account code already in use",
			slog.String("code", req.Code),
			slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("account code %q already exists: %w", req.Code, apperrors.ErrDuplicate)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: workplaceID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("workplace_id", workplaceID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, workplaceID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.WorkplaceID != workplaceID {
		s.LogDebug(ctx, "Account found but belongs to different workplace",
			slog.String("account_id", accountID),
			slog.String("account_workplace", account.WorkplaceID),
			slog.String("requested_workplace", workplaceID))
		// Return NotFound to obscure existence from unauthorized workplaces
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, workplaceID string, code string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, workplaceID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code",
				slog.String("code", code),
				slog.String("workplace_id", workplaceID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs",
			slog.String("account_ids", fmt.Sprintf("%v", accountIDs)))
		return nil, err
	}

	for _, account := range accounts {
		if account.WorkplaceID != workplaceID {
			s.LogDebug(ctx, "Account found but belongs to different workplace",
				slog.String("account_id", account.AccountID),
				slog.String("account_workplace", account.WorkplaceID),
				slog.String("requested_workplace", workplaceID))
			return nil, apperrors.ErrNotFound
		}
	}

	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, workplaceID string, userID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, workplaceID, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("workplace_id", workplaceID),
			slog.Int("limit", params.Limit),
			slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list accounts for workplace %s: %w", workplaceID, err)
	}

	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, workplaceID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.GetAccountByID(ctx, workplaceID, accountID, userID)
	if err != nil {
		return nil, err // GetAccountByID already logs errors
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", account.AccountID),
		slog.String("workplace_id", account.WorkplaceID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, workplaceID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		return err
	}

	// Verify that the account exists and belongs to the workplace.
	_, err := s.GetAccountByID(ctx, workplaceID, accountID, userID)
	if err != nil {
		return err
	}

	// Deactivation retires the account from new postings only; existing lines
	// stay on the books and keep showing up in reports.
	hasPostings, err := s.accountRepo.HasPostings(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check postings before deactivation",
			slog.String("account_id", accountID))
		return err
	}
	if hasPostings {
		s.LogWarn(ctx, "Deactivating account with existing postings",
			slog.String("account_id", accountID),
			slog.String("workplace_id", workplaceID))
	}

	now := time.Now()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully",
		slog.String("account_id", accountID),
		slog.String("workplace_id", workplaceID))
	return nil
}
