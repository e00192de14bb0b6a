package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFiscalYear_Overlaps(t *testing.T) {
	fy := domain.FiscalYear{StartDate: date(2024, 1, 1), EndDate: date(2024, 12, 31)}

	assert.True(t, fy.Overlaps(date(2024, 6, 1), date(2025, 6, 1)))
	assert.True(t, fy.Overlaps(date(2023, 1, 1), date(2024, 1, 1)), "touching the start is inclusive")
	assert.True(t, fy.Overlaps(date(2024, 12, 31), date(2025, 12, 30)), "touching the end is inclusive")
	assert.True(t, fy.Overlaps(date(2023, 1, 1), date(2026, 1, 1)), "enclosing range")
	assert.False(t, fy.Overlaps(date(2025, 1, 1), date(2025, 12, 31)))
	assert.False(t, fy.Overlaps(date(2023, 1, 1), date(2023, 12, 31)))
}

func TestFiscalYear_Contains(t *testing.T) {
	fy := domain.FiscalYear{StartDate: date(2024, 1, 1), EndDate: date(2024, 12, 31)}
	assert.True(t, fy.Contains(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, fy.Contains(date(2024, 1, 1)))
	assert.False(t, fy.Contains(date(2025, 1, 1)))
}

func TestDefaultFiscalYearCode(t *testing.T) {
	assert.Equal(t, "FY2024", domain.DefaultFiscalYearCode(date(2024, 1, 1), date(2024, 12, 31)))
	assert.Equal(t, "FY2024/25", domain.DefaultFiscalYearCode(date(2024, 7, 1), date(2025, 6, 30)))
	assert.Equal(t, "FY2099/00", domain.DefaultFiscalYearCode(date(2099, 7, 1), date(2100, 6, 30)))
}
