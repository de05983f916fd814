package models

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

// JournalEntry represents a row of the journal_entries table.
type JournalEntry struct {
	EntryID          string      `db:"entry_id"`
	WorkplaceID      string      `db:"workplace_id"`
	EntryDate        time.Time   `db:"entry_date"`
	Description      string      `db:"description"`
	Reference        string      `db:"reference"`
	Status           EntryStatus `db:"status"`
	OriginalEntryID  *string     `db:"original_entry_id"`  // Nullable
	ReversingEntryID *string     `db:"reversing_entry_id"` // Nullable
	AuditFields
}

// JournalLine represents a row of the journal_lines table. Lines keep their
// submitted order via line_no.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	LineNo      int             `db:"line_no"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
}
