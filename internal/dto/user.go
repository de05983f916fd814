package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credentials for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userID"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
