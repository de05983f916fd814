// Package ledger implements the double-entry consistency rules: journal entry
// validation, aggregation of accepted entries into per-account totals, and the
// trial balance report built from those totals.
//
// Everything in this package is a pure function of its inputs. There is no
// locking, no I/O and no hidden state; callers are responsible for handing in
// a consistent snapshot of accounts and entries for the duration of a call.
package ledger

import (
	"fmt"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the maximum allowed absolute difference between debit and
// credit totals, matching two-decimal currency precision.
var Tolerance = decimal.New(1, -2) // 0.01

// NormalBalance is the side on which an account type customarily carries a
// positive balance.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT_NORMAL"
	CreditNormal NormalBalance = "CREDIT_NORMAL"
)

// Classify returns the normal balance side for an account type.
// The mapping is the accounting convention, a pure function of the type;
// it is deliberately not configurable per account.
func Classify(accountType domain.AccountType) (NormalBalance, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return DebitNormal, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return CreditNormal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAccountType, accountType)
	}
}

// Registry is a read-only lookup over a snapshot of the chart of accounts.
// It holds no state beyond the snapshot it was built from.
type Registry struct {
	byID map[string]domain.Account
}

// NewRegistry builds a registry from an account snapshot.
func NewRegistry(accounts []domain.Account) *Registry {
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}
	return &Registry{byID: byID}
}

// Lookup resolves an account by its identifier.
func (r *Registry) Lookup(accountID string) (domain.Account, bool) {
	acc, ok := r.byID[accountID]
	return acc, ok
}

// Accounts returns the accounts held by the registry, in no particular order.
func (r *Registry) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(r.byID))
	for _, acc := range r.byID {
		out = append(out, acc)
	}
	return out
}

// Len reports the number of accounts in the snapshot.
func (r *Registry) Len() int {
	return len(r.byID)
}
