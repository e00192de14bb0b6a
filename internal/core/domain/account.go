package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// Valid reports whether c is one of the five known categories.
func (c AccountCategory) Valid() bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// DebitIncreases reports whether a debit raises the balance of an account in this category.
func (c AccountCategory) DebitIncreases() bool {
	return c == Asset || c == Expense
}

// Balance combines an opening balance with the total debits and credits posted
// against an account of this category.
//
// Asset, Expense: opening + debit - credit.
// Liability, Equity, Revenue: opening + credit - debit.
func (c AccountCategory) Balance(opening, totalDebit, totalCredit decimal.Decimal) (decimal.Decimal, error) {
	switch c {
	case Asset, Expense:
		return opening.Add(totalDebit).Sub(totalCredit), nil
	case Liability, Equity, Revenue:
		return opening.Add(totalCredit).Sub(totalDebit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account category %q", c)
	}
}

// Account represents a ledger account in the chart of accounts.
type Account struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"` // unique, e.g. "1001" or "2103-000007"
	Name           string          `json:"name"`
	Category       AccountCategory `json:"category"`
	Subtype        string          `json:"subtype"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"` // written only by the balance recalculator
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// CustomerPrepaymentAccountCode derives the per-customer prepayment liability
// account code from the configured base code, e.g. ("2103", 7) -> "2103-000007".
func CustomerPrepaymentAccountCode(baseCode string, customerID int64) string {
	return fmt.Sprintf("%s-%06d", baseCode, customerID)
}

// Account subtypes used by system-managed accounts.
const (
	SubtypeCash               = "CASH"
	SubtypeBank               = "BANK"
	SubtypeReceivable         = "RECEIVABLE"
	SubtypeCustomerPrepayment = "CUSTOMER_PREPAYMENT"
	SubtypeTaxPayable         = "TAX_PAYABLE"
	SubtypePayrollPayable     = "PAYROLL_PAYABLE"
	SubtypeSales              = "SALES"
	SubtypePayrollExpense     = "PAYROLL_EXPENSE"
)
