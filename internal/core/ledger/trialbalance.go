package ledger

import (
	"sort"
	"strings"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalance produces the canonical trial balance view from aggregated
// balances. Rows are ordered by account code using plain string comparison;
// codes may contain non-numeric segments and are never coerced to numbers.
//
// The report carries the raw debit/credit totals per account. Its own global
// check is that the debit and credit columns sum to the same value within
// Tolerance; a violation returns an *InconsistencyError and no rows, since a
// silently wrong report must never be rendered.
func TrialBalance(reg *Registry, balances map[string]domain.LedgerBalance) ([]domain.TrialBalanceRow, error) {
	rows := make([]domain.TrialBalanceRow, 0, len(balances))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for accountID, bal := range balances {
		acc, ok := reg.Lookup(accountID)
		if !ok {
			return nil, &UnknownAccountError{AccountID: accountID}
		}
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Debit:       bal.TotalDebit,
			Credit:      bal.TotalCredit,
			Net:         bal.Net,
		})
		totalDebit = totalDebit.Add(bal.TotalDebit)
		totalCredit = totalCredit.Add(bal.TotalCredit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(Tolerance) {
		return nil, &InconsistencyError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}

	sort.Slice(rows, func(i, j int) bool {
		if c := strings.Compare(rows[i].Code, rows[j].Code); c != 0 {
			return c < 0
		}
		return rows[i].AccountID < rows[j].AccountID
	})

	return rows, nil
}
