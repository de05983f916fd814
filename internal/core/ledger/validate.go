package ledger

import (
	"fmt"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateLines decides accept/reject for the lines of a candidate journal
// entry. Checks are applied in a fixed order and short-circuit on the first
// failure:
//
//  1. at least two lines
//  2. every referenced account exists in the registry
//  3. no line is negative or populated on both sides
//  4. no account is referenced by more than one line
//  5. debit and credit totals agree within Tolerance
//
// A line with both debit and credit zero is accepted but contributes nothing;
// it is reported in the returned warnings so the caller can log it. An entry
// is accepted or rejected as a whole, never partially.
func ValidateLines(reg *Registry, lines []domain.JournalEntryLine) ([]string, error) {
	if len(lines) < 2 {
		return nil, ErrInsufficientLines
	}

	for _, line := range lines {
		if _, ok := reg.Lookup(line.AccountID); !ok {
			return nil, &UnknownAccountError{AccountID: line.AccountID}
		}
	}

	var warnings []string
	for i, line := range lines {
		if line.Debit.IsNegative() {
			return nil, &MalformedLineError{Index: i, Reason: "debit is negative"}
		}
		if line.Credit.IsNegative() {
			return nil, &MalformedLineError{Index: i, Reason: "credit is negative"}
		}
		if !line.Debit.IsZero() && !line.Credit.IsZero() {
			return nil, &MalformedLineError{Index: i, Reason: "both debit and credit are populated"}
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			warnings = append(warnings, fmt.Sprintf("line %d has zero debit and zero credit and contributes nothing", i))
		}
	}

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.AccountID]; dup {
			return nil, &DuplicateAccountError{AccountID: line.AccountID}
		}
		seen[line.AccountID] = struct{}{}
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	if debits.Sub(credits).Abs().GreaterThan(Tolerance) {
		return nil, &UnbalancedError{TotalDebit: debits, TotalCredit: credits}
	}

	return warnings, nil
}
