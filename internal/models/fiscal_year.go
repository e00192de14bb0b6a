package models

import "time"

// FiscalYear is a row of the fiscal_years table.
type FiscalYear struct {
	FiscalYearID string     `db:"fiscal_year_id"`
	Code         string     `db:"code"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	IsCurrent    bool       `db:"is_current"`
	IsClosed     bool       `db:"is_closed"`
	ClosedAt     *time.Time `db:"closed_at"`
	AuditFields
}
