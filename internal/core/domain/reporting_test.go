package domain_test

import (
	"testing"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTrialBalance(t *testing.T) {
	accounts := []domain.Account{
		{Code: "1001", Category: domain.Asset, CurrentBalance: dec("50000")},
		{Code: "2103-000007", Category: domain.Liability, CurrentBalance: dec("50000")},
		{Code: "4001", Category: domain.Revenue, CurrentBalance: dec("0")},
		{Code: "1002", Category: domain.Asset, CurrentBalance: dec("-200")},
		{Code: "5001", Category: domain.Expense, CurrentBalance: dec("200")},
	}

	tb := domain.BuildTrialBalance(accounts)

	require.Len(t, tb.Rows, 4, "zero balances are omitted")
	assert.True(t, tb.Balanced)
	assert.True(t, tb.TotalDebit.Equal(dec("50200")))
	assert.True(t, tb.Rows[2].Credit.Equal(dec("200")), "overdrawn asset shows as credit")
}
