package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerBalance holds the aggregated debit/credit activity of a single account.
// It is derived from the full accepted-entry set and never persisted.
type LedgerBalance struct {
	AccountID   string          `json:"accountID"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	// Net is signed per the account's normal balance convention: a negative
	// value means the account has been driven against its normal side (a
	// data-quality signal, not an error).
	Net decimal.Decimal `json:"net"`
}
