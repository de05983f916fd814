package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the validation and reporting rules. Callers match with
// errors.Is; the typed errors below carry the offending values.
var (
	ErrInsufficientLines        = errors.New("journal entry must have at least two lines")
	ErrUnknownAccount           = errors.New("unknown account")
	ErrMalformedLine            = errors.New("malformed journal line")
	ErrDuplicateAccount         = errors.New("account appears on more than one line")
	ErrUnbalanced               = errors.New("journal entry does not balance")
	ErrAggregationInconsistency = errors.New("trial balance debits and credits disagree")
	ErrUnknownAccountType       = errors.New("unknown account type")
)

// UnknownAccountError reports a line referencing an account absent from the registry.
type UnknownAccountError struct {
	AccountID string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account: %s", e.AccountID)
}

func (e *UnknownAccountError) Unwrap() error { return ErrUnknownAccount }

// MalformedLineError reports a line with a negative amount or with both
// debit and credit populated.
type MalformedLineError struct {
	Index  int // zero-based position of the line within the entry
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed journal line %d: %s", e.Index, e.Reason)
}

func (e *MalformedLineError) Unwrap() error { return ErrMalformedLine }

// DuplicateAccountError reports an account referenced by more than one line.
type DuplicateAccountError struct {
	AccountID string
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("account appears on more than one line: %s", e.AccountID)
}

func (e *DuplicateAccountError) Unwrap() error { return ErrDuplicateAccount }

// UnbalancedError reports debit and credit totals differing beyond Tolerance.
// Both totals are carried so the caller can display the discrepancy.
type UnbalancedError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("journal entry does not balance: debits total %s, credits total %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

func (e *UnbalancedError) Unwrap() error { return ErrUnbalanced }

// InconsistencyError reports a trial balance whose own global debit/credit sums
// disagree beyond Tolerance. This cannot happen for a ledger built solely from
// entries that individually passed validation, so it signals a defect in the
// surrounding pipeline, not a business condition. The report must not be
// rendered when this is returned.
type InconsistencyError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("trial balance debits and credits disagree: debits total %s, credits total %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

func (e *InconsistencyError) Unwrap() error { return ErrAggregationInconsistency }
