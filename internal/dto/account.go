package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,max=32"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Description string             `json:"description"` // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// The account type is deliberately absent: it is immutable once set.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Description string             `json:"description"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Code:        acc.Code,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Description: acc.Description,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
		CreatedBy:   acc.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
