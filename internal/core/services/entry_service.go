package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/core/ledger"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
)

const (
	defaultEntryPageSize = 20
	maxEntryPageSize     = 100
)

// entryService implements the EntrySvcFacade interface. All acceptance rules
// live in the ledger package; this service loads the account snapshot, runs
// the checks and persists accepted entries.
type entryService struct {
	BaseService
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// EntryServiceOption is a functional option for configuring the entry service
type EntryServiceOption func(*entryService)

// WithEntryAuthorizer adds workplace authorizer dependency
func WithEntryAuthorizer(authorizer portssvc.WorkplaceAuthorizerSvc) EntryServiceOption {
	return func(s *entryService) {
		s.WorkplaceAuthorizer = authorizer
	}
}

// NewEntryService creates a new journal entry service with the provided options
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, options ...EntryServiceOption) portssvc.EntrySvcFacade {
	svc := &entryService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure entryService implements the EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// registryForLines loads the accounts referenced by the candidate lines and
// builds the validation snapshot. Accounts from other workplaces are left out
// of the snapshot so they fail the existence check, same as accounts that do
// not exist at all.
func (s *entryService) registryForLines(ctx context.Context, workplaceID string, lines []dto.EntryLineRequest) (*ledger.Registry, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}

	found, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for entry validation",
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(found))
	for _, acc := range found {
		if acc.WorkplaceID != workplaceID {
			continue
		}
		accounts = append(accounts, acc)
	}
	return ledger.NewRegistry(accounts), nil
}

func (s *entryService) CreateEntry(ctx context.Context, workplaceID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, workplaceID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create entry",
			slog.String("user_id", creatorUserID),
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	entryDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid entry date %q: %w", req.Date, apperrors.ErrValidation)
	}

	candidate := make([]domain.JournalEntryLine, len(req.Lines))
	for i, l := range req.Lines {
		candidate[i] = domain.JournalEntryLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}

	reg, err := s.registryForLines(ctx, workplaceID, req.Lines)
	if err != nil {
		return nil, err
	}

	warnings, err := ledger.ValidateLines(reg, candidate)
	if err != nil {
		s.LogInfo(ctx, "Entry rejected",
			slog.String("workplace_id", workplaceID),
			slog.String("reason", err.Error()))
		return nil, err
	}
	for _, w := range warnings {
		s.LogWarn(ctx, "Entry accepted with warning",
			slog.String("workplace_id", workplaceID),
			slog.String("warning", w))
	}

	// Inactive accounts stay visible in reports but stop accepting postings.
	for _, l := range candidate {
		acc, _ := reg.Lookup(l.AccountID)
		if !acc.IsActive {
			return nil, fmt.Errorf("account %s (%s) is inactive: %w", acc.Code, acc.AccountID, apperrors.ErrValidation)
		}
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		WorkplaceID: workplaceID,
		EntryDate:   entryDate,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	entry.Lines = make([]domain.JournalEntryLine, len(candidate))
	for i, l := range candidate {
		l.LineID = uuid.NewString()
		l.EntryID = entry.EntryID
		entry.Lines[i] = l
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created successfully",
		slog.String("entry_id", entry.EntryID),
		slog.String("workplace_id", workplaceID),
		slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

func (s *entryService) GetEntryByID(ctx context.Context, workplaceID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID",
				slog.String("entry_id", entryID))
		}
		return nil, err
	}

	if entry.WorkplaceID != workplaceID {
		s.LogDebug(ctx, "Entry found but belongs to different workplace",
			slog.String("entry_id", entryID),
			slog.String("entry_workplace", entry.WorkplaceID),
			slog.String("requested_workplace", workplaceID))
		// Return NotFound to obscure existence from unauthorized workplaces
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry lines",
			slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines

	return entry, nil
}

func (s *entryService) ListEntries(ctx context.Context, workplaceID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}

	entries, nextToken, err := s.entryRepo.ListEntriesByWorkplace(ctx, workplaceID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries",
			slog.String("workplace_id", workplaceID),
			slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list entries for workplace %s: %w", workplaceID, err)
	}

	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i := range entries {
			entryIDs[i] = entries[i].EntryID
		}
		linesByEntry, err := s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to load lines for listed entries",
				slog.String("workplace_id", workplaceID))
			return nil, err
		}
		for i := range entries {
			entries[i].Lines = linesByEntry[entries[i].EntryID]
		}
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *entryService) ReverseEntry(ctx context.Context, workplaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to reverse entry",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	original, err := s.GetEntryByID(ctx, workplaceID, entryID, userID)
	if err != nil {
		return nil, err
	}

	if original.Status == domain.Reversed {
		s.LogDebug(ctx, "Entry already reversed",
			slog.String("entry_id", entryID))
		return nil, fmt.Errorf("entry %s is already reversed: %w", entryID, apperrors.ErrConflict)
	}

	now := time.Now()
	reversing := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		WorkplaceID:     workplaceID,
		EntryDate:       now.Truncate(24 * time.Hour),
		Description:     fmt.Sprintf("Reversal of: %s", original.Description),
		Reference:       original.Reference,
		Status:          domain.Posted,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	reversing.Lines = make([]domain.JournalEntryLine, len(original.Lines))
	for i, l := range original.Lines {
		reversing.Lines[i] = domain.JournalEntryLine{
			LineID:      uuid.NewString(),
			EntryID:     reversing.EntryID,
			AccountID:   l.AccountID,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Description: l.Description,
		}
	}

	if err := s.entryRepo.SaveReversal(ctx, reversing, original.EntryID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to save reversal",
			slog.String("entry_id", entryID),
			slog.String("reversing_entry_id", reversing.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed successfully",
		slog.String("entry_id", entryID),
		slog.String("reversing_entry_id", reversing.EntryID),
		slog.String("workplace_id", workplaceID))
	return &reversing, nil
}
