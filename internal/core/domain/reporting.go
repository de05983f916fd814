package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
// Debit and Credit are the raw aggregated totals, not the signed net.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"`
}
