package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry with its lines.
	GetEntryByID(ctx context.Context, workplaceID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a token-paginated list of entries in a workplace.
	ListEntries(ctx context.Context, workplaceID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines write operations for journal entries
type EntryWriterSvc interface {
	// CreateEntry validates a candidate entry and, if accepted, persists it
	// with a server-assigned identifier. Acceptance is atomic: an entry with
	// one invalid line is rejected as a whole.
	CreateEntry(ctx context.Context, workplaceID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a reversing entry that swaps every line's debit and
	// credit, and marks the original entry REVERSED.
	ReverseEntry(ctx context.Context, workplaceID string, entryID string, userID string) (*domain.JournalEntry, error)
}

// EntrySvcFacade combines all journal-entry service interfaces.
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
