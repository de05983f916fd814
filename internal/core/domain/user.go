package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (e.g., UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
