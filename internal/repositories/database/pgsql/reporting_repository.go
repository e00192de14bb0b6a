package pgsql

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// ListAccountTotalsAsOf totals line debits and credits per account over entries dated on or before asOf.
// Accounts without lines are included with zero totals so their opening balance still shows.
func (r *reportingRepository) ListAccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]portsrepo.AccountTotals, error) {
	query := `
		SELECT
			a.account_id, a.code, a.name, a.category, a.subtype, a.opening_balance, a.current_balance, a.is_active,
			a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		LEFT JOIN (
			journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id AND e.entry_date <= $1
		) ON l.account_id = a.account_id
		GROUP BY a.account_id
		ORDER BY a.code
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []portsrepo.AccountTotals{}
	for rows.Next() {
		var row portsrepo.AccountTotals
		acc, err := scanAccountWith(rows, &row.TotalDebit, &row.TotalCredit)
		if err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		row.Account = acc
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return result, nil
}
