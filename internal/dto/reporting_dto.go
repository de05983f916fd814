package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// LedgerBalanceResponse represents an account's aggregated activity.
type LedgerBalanceResponse struct {
	AccountID   string          `json:"accountID"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Net         decimal.Decimal `json:"net"`
}

// ListLedgerBalancesResponse wraps per-account balances keyed by account ID.
type ListLedgerBalancesResponse struct {
	Balances map[string]LedgerBalanceResponse `json:"balances"`
}

// ToTrialBalanceResponse converts domain trial balance rows to a DTO response
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: asOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i, row := range rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			Name:        row.Name,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
			Net:         row.Net,
		}
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	response.Totals.Debit = totalDebit
	response.Totals.Credit = totalCredit

	return response
}

// ToListLedgerBalancesResponse converts aggregated balances to a DTO response
func ToListLedgerBalancesResponse(balances map[string]domain.LedgerBalance) ListLedgerBalancesResponse {
	out := ListLedgerBalancesResponse{
		Balances: make(map[string]LedgerBalanceResponse, len(balances)),
	}
	for accountID, bal := range balances {
		out.Balances[accountID] = LedgerBalanceResponse{
			AccountID:   bal.AccountID,
			TotalDebit:  bal.TotalDebit,
			TotalCredit: bal.TotalCredit,
			Net:         bal.Net,
		}
	}
	return out
}
