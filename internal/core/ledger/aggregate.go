package ledger

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Aggregate folds accepted journal entries into per-account debit/credit
// totals. Entry order is irrelevant; repeated calls recompute from the full
// entry set. Accounts with no activity are omitted from the result.
//
// Net is signed per the account's normal balance: totalDebit-totalCredit for
// debit-normal accounts and totalCredit-totalDebit for credit-normal ones.
// A negative Net means the account was driven against its normal side.
func Aggregate(reg *Registry, entries []domain.JournalEntry) (map[string]domain.LedgerBalance, error) {
	balances := make(map[string]domain.LedgerBalance)

	for _, entry := range entries {
		for _, line := range entry.Lines {
			bal, ok := balances[line.AccountID]
			if !ok {
				bal = domain.LedgerBalance{
					AccountID:   line.AccountID,
					TotalDebit:  decimal.Zero,
					TotalCredit: decimal.Zero,
				}
			}
			bal.TotalDebit = bal.TotalDebit.Add(line.Debit)
			bal.TotalCredit = bal.TotalCredit.Add(line.Credit)
			balances[line.AccountID] = bal
		}
	}

	for accountID, bal := range balances {
		acc, ok := reg.Lookup(accountID)
		if !ok {
			// Accepted entries only ever reference known accounts, so a miss
			// here means the snapshot and the entry set are out of step.
			return nil, &UnknownAccountError{AccountID: accountID}
		}
		normal, err := Classify(acc.AccountType)
		if err != nil {
			return nil, err
		}
		if normal == DebitNormal {
			bal.Net = bal.TotalDebit.Sub(bal.TotalCredit)
		} else {
			bal.Net = bal.TotalCredit.Sub(bal.TotalDebit)
		}
		balances[accountID] = bal
	}

	return balances, nil
}
