package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents an account in the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (e.g., UUID)
	WorkplaceID string      `json:"workplaceID"` // FK -> workplaces.workplace_id (NON-NULL)
	Code        string      `json:"code"`        // Short user-facing code (e.g. "101"), unique per workplace
	Name        string      `json:"name"`        // User-defined name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc. Immutable once the account has postings.
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Soft-retirement flag; referenced accounts are never deleted
	AuditFields             // Embed CreatedAt, CreatedBy, etc.
}
