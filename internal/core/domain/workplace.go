package domain

import "time"

// Workplace represents an isolated tenant containing accounts and journal entries.
type Workplace struct {
	WorkplaceID string `json:"workplaceID"` // Primary Key (e.g., UUID)
	Name        string `json:"name"`        // User-defined name for the workplace
	Description string `json:"description"` // Optional description
	IsActive    bool   `json:"isActive"`    // Indicates whether the workplace is active or disabled
	AuditFields        // Embed common audit fields
}

// UserWorkplaceRole defines the possible roles a user can have within a workplace.
type UserWorkplaceRole string

const (
	RoleAdmin    UserWorkplaceRole = "ADMIN"
	RoleMember   UserWorkplaceRole = "MEMBER"
	RoleReadOnly UserWorkplaceRole = "READONLY" // Users with read-only access to workplace data
	RoleRemoved  UserWorkplaceRole = "REMOVED"  // For users who have been removed from the workplace
)

// UserWorkplace represents the membership of a User in a Workplace.
type UserWorkplace struct {
	UserID      string            `json:"userID"`
	WorkplaceID string            `json:"workplaceID"`
	Role        UserWorkplaceRole `json:"role"`
	JoinedAt    time.Time         `json:"joinedAt"`
}
