package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's current balance presented on its natural side.
type TrialBalanceRow struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  AccountCategory `json:"category"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account with a non-zero balance; totals must agree.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// BuildTrialBalance places each balance on the debit or credit column.
// A debit-normal account with a negative balance shows on the credit side and vice versa.
func BuildTrialBalance(accounts []Account) TrialBalance {
	tb := TrialBalance{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, acc := range accounts {
		if acc.CurrentBalance.IsZero() {
			continue
		}
		row := TrialBalanceRow{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			Category:  acc.Category,
			Debit:     decimal.Zero,
			Credit:    decimal.Zero,
		}
		debitSide := acc.Category.DebitIncreases() == acc.CurrentBalance.IsPositive()
		if debitSide {
			row.Debit = acc.CurrentBalance.Abs()
		} else {
			row.Credit = acc.CurrentBalance.Abs()
		}
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}
	tb.Balanced = tb.TotalDebit.Equal(tb.TotalCredit)
	return tb
}
