package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is a single candidate line. Amounts default to zero when
// omitted; sign and shape rules are enforced by the validator, not the binding,
// so every entry point shares one copy of the rules.
type EntryLineRequest struct {
	AccountID   string          `json:"accountId" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines a candidate journal entry as submitted by a client.
// The entry identifier is never client-supplied.
type CreateEntryRequest struct {
	Date        string             `json:"date" binding:"required,datetime=2006-01-02"`
	Description string             `json:"description" binding:"required"`
	Reference   string             `json:"reference"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,dive"`
}

// EntryLineResponse defines the data returned for a single line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountId"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string              `json:"entryID"`
	Date             string              `json:"date"`
	Description      string              `json:"description"`
	Reference        string              `json:"reference,omitempty"`
	Status           domain.EntryStatus  `json:"status"`
	OriginalEntryID  *string             `json:"originalEntryID,omitempty"`
	ReversingEntryID *string             `json:"reversingEntryID,omitempty"`
	Lines            []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the continuation token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain line to its response DTO.
func ToEntryLineResponse(l *domain.JournalEntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		Date:             e.EntryDate.Format("2006-01-02"),
		Description:      e.Description,
		Reference:        e.Reference,
		Status:           e.Status,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToEntryResponses converts a slice of domain entries to response DTOs.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
