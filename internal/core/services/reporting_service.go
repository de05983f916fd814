package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/core/ledger"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
)

// reportingService implements the ReportingService interface. Balances are
// recomputed from the full accepted-entry set on every call; nothing is read
// from a stored balance column, so a report can never drift from the journal.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.EntryReader
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingAuthorizer adds workplace authorizer dependency
func WithReportingAuthorizer(authorizer portssvc.WorkplaceAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.WorkplaceAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accountRepo portsrepo.AccountReader, entryRepo portsrepo.EntryReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// snapshot loads the chart of accounts and the accepted entries of a
// workplace in one place so both reports aggregate over the same inputs.
func (s *reportingService) snapshot(ctx context.Context, workplaceID string) (*ledger.Registry, []domain.JournalEntry, error) {
	accounts, err := s.accountRepo.ListAllAccounts(ctx, workplaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts",
			slog.String("workplace_id", workplaceID))
		return nil, nil, err
	}

	entries, err := s.entryRepo.ListEntriesWithLines(ctx, workplaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal entries",
			slog.String("workplace_id", workplaceID))
		return nil, nil, err
	}

	return ledger.NewRegistry(accounts), entries, nil
}

func (s *reportingService) LedgerBalances(ctx context.Context, workplaceID string, userID string) (map[string]domain.LedgerBalance, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	reg, entries, err := s.snapshot(ctx, workplaceID)
	if err != nil {
		return nil, err
	}

	balances, err := ledger.Aggregate(reg, entries)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger balances",
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	s.LogDebug(ctx, "Ledger balances computed",
		slog.String("workplace_id", workplaceID),
		slog.Int("entry_count", len(entries)),
		slog.Int("active_accounts", len(balances)))
	return balances, nil
}

func (s *reportingService) TrialBalance(ctx context.Context, workplaceID string, userID string) ([]domain.TrialBalanceRow, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	reg, entries, err := s.snapshot(ctx, workplaceID)
	if err != nil {
		return nil, err
	}

	balances, err := ledger.Aggregate(reg, entries)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger balances",
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	rows, err := ledger.TrialBalance(reg, balances)
	if err != nil {
		if errors.Is(err, ledger.ErrAggregationInconsistency) {
			// Every accepted entry balanced individually, so an unbalanced
			// aggregate means the stored journal no longer matches what was
			// accepted. Surface it loudly and render nothing.
			s.LogError(ctx, err, "Trial balance inconsistency detected",
				slog.String("workplace_id", workplaceID),
				slog.Int("entry_count", len(entries)))
		} else {
			s.LogError(ctx, err, "Failed to build trial balance",
				slog.String("workplace_id", workplaceID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Trial balance generated",
		slog.String("workplace_id", workplaceID),
		slog.Int("row_count", len(rows)))
	return rows, nil
}
