package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CreateWorkplaceRequest defines the data needed to create a workplace.
type CreateWorkplaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AddUserToWorkplaceRequest defines the data for adding a member.
type AddUserToWorkplaceRequest struct {
	UserID string                   `json:"userID" binding:"required"`
	Role   domain.UserWorkplaceRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// WorkplaceResponse defines the data returned for a workplace.
type WorkplaceResponse struct {
	WorkplaceID string    `json:"workplaceID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListWorkplacesResponse wraps the list of workplaces.
type ListWorkplacesResponse struct {
	Workplaces []WorkplaceResponse `json:"workplaces"`
}

// ToWorkplaceResponse converts a domain.Workplace to WorkplaceResponse DTO.
func ToWorkplaceResponse(w *domain.Workplace) WorkplaceResponse {
	return WorkplaceResponse{
		WorkplaceID: w.WorkplaceID,
		Name:        w.Name,
		Description: w.Description,
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt,
	}
}

// ToListWorkplacesResponse converts domain workplaces to the list DTO.
func ToListWorkplacesResponse(workplaces []domain.Workplace) ListWorkplacesResponse {
	res := ListWorkplacesResponse{Workplaces: make([]WorkplaceResponse, len(workplaces))}
	for i, w := range workplaces {
		res.Workplaces[i] = ToWorkplaceResponse(&w)
	}
	return res
}
