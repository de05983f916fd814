package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// Reports are recomputed on demand from the full accepted-entry set.
type ReportingService interface {
	// TrialBalance generates the trial balance for a workplace, rows ordered
	// by account code.
	TrialBalance(ctx context.Context, workplaceID string, userID string) ([]domain.TrialBalanceRow, error)

	// LedgerBalances returns the aggregated per-account totals for a
	// workplace. Accounts with no activity are omitted.
	LedgerBalances(ctx context.Context, workplaceID string, userID string) (map[string]domain.LedgerBalance, error)
}
