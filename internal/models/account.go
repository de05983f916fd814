package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a row of the accounts table.
type Account struct {
	AccountID   string      `db:"account_id"`
	WorkplaceID string      `db:"workplace_id"`
	Code        string      `db:"code"` // User-facing identifier, unique per workplace
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}
