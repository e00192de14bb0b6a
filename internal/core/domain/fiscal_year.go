package domain

import (
	"fmt"
	"time"
)

// FiscalYear is an accounting period. A closed year is immutable and never current.
type FiscalYear struct {
	FiscalYearID string     `json:"fiscalYearID"`
	Code         string     `json:"code"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsCurrent    bool       `json:"isCurrent"`
	IsClosed     bool       `json:"isClosed"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	AuditFields
}

// Overlaps reports inclusive interval overlap: a.start <= b.end && a.end >= b.start.
func (fy FiscalYear) Overlaps(start, end time.Time) bool {
	return !start.After(fy.EndDate) && !end.Before(fy.StartDate)
}

// Contains reports whether date falls inside the year, both ends inclusive.
func (fy FiscalYear) Contains(date time.Time) bool {
	d := TruncateDate(date)
	return !d.Before(fy.StartDate) && !d.After(fy.EndDate)
}

// DefaultFiscalYearCode is "FY2024" for a calendar-aligned year and
// "FY2024/25" when the range spans two calendar years.
func DefaultFiscalYearCode(start, end time.Time) string {
	if start.Year() == end.Year() {
		return fmt.Sprintf("FY%d", start.Year())
	}
	return fmt.Sprintf("FY%d/%02d", start.Year(), end.Year()%100)
}

// TruncateDate drops the time of day, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
