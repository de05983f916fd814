package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntryLine represents a single line within a journal entry, affecting one account.
// Exactly one of Debit/Credit is expected to be non-zero; a line with both zero
// contributes nothing and is flagged as a warning during validation.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (e.g., UUID)
	EntryID     string          `json:"entryID"`     // FK -> JournalEntry.EntryID (Not Null)
	AccountID   string          `json:"accountID"`   // FK -> Account.AccountID (Not Null)
	Debit       decimal.Decimal `json:"debit"`       // Non-negative
	Credit      decimal.Decimal `json:"credit"`      // Non-negative
	Description string          `json:"description"` // Optional, no effect on balancing
}

// JournalEntry represents a single, balanced financial event composed of multiple lines.
// Once accepted an entry is immutable; corrections are made by posting a reversal.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`     // Primary Key, assigned on acceptance (never client-supplied)
	WorkplaceID      string      `json:"workplaceID"` // FK -> workplaces.workplace_id (Not Null)
	EntryDate        time.Time   `json:"entryDate"`   // Calendar date the event occurred (no time component)
	Description      string      `json:"description"` // Required summary
	Reference        string      `json:"reference"`   // Optional external document number
	Status           EntryStatus `json:"status"`      // Default: Posted
	OriginalEntryID  *string     `json:"originalEntryID,omitempty"`  // Set on reversing entries
	ReversingEntryID *string     `json:"reversingEntryID,omitempty"` // Set on reversed entries
	Lines            []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}
