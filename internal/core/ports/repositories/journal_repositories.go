package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry (without lines).
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries in one query.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error)

	// ListEntriesByWorkplace retrieves a token-paginated list of entries,
	// newest first.
	ListEntriesByWorkplace(ctx context.Context, workplaceID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListEntriesWithLines retrieves every accepted entry of a workplace, lines
	// populated. This is the aggregation input; it is deliberately unpaginated.
	ListEntriesWithLines(ctx context.Context, workplaceID string) ([]domain.JournalEntry, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists an accepted entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// SaveReversal persists the reversing entry and marks the original entry
	// REVERSED in a single transaction.
	SaveReversal(ctx context.Context, reversing domain.JournalEntry, originalEntryID string, userID string, now time.Time) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
