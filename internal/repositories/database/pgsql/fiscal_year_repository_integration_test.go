package pgsql

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/pkg/database"
)

// setupFiscalYearDB needs a disposable database; every fiscal year in it is deleted.
func setupFiscalYearDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../../.env")

	dbURL := os.Getenv("LEDGER_TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("LEDGER_TEST_DATABASE_URL not set, skipping Postgres integration test")
	}

	require.NoError(t, database.RunMigrations(slog.Default(), dbURL, "file://../../../../migrations", database.MigrateUp))

	ctx := context.Background()
	pool, err := database.NewPgxPool(ctx, dbURL, true)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DELETE FROM fiscal_years;`)
	require.NoError(t, err)
	return pool
}

func saveYear(t *testing.T, pool *pgxpool.Pool, repo *PgxFiscalYearRepository, fy domain.FiscalYear) {
	t.Helper()
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	require.NoError(t, repo.SaveFiscalYearInTx(ctx, tx, fy))
	require.NoError(t, tx.Commit(ctx))
}

func fiscalYear(id, code string, start, end time.Time, current bool) domain.FiscalYear {
	now := time.Now().UTC()
	return domain.FiscalYear{
		FiscalYearID: id,
		Code:         code,
		StartDate:    start,
		EndDate:      end,
		IsCurrent:    current,
		AuditFields:  domain.NewAuditFields("integration", now),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFiscalYearRepository_SetCurrentFlipsBackAndForth(t *testing.T) {
	pool := setupFiscalYearDB(t)
	repo := &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
	ctx := context.Background()

	saveYear(t, pool, repo, fiscalYear("fy-a", "FY2023", day(2023, 1, 1), day(2023, 12, 31), true))
	saveYear(t, pool, repo, fiscalYear("fy-b", "FY2024", day(2024, 1, 1), day(2024, 12, 31), false))

	setCurrent := func(id string) error {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback(ctx) }()

		require.NoError(t, repo.LockFiscalYearsInTx(ctx, tx))
		if err := repo.SetCurrentFiscalYearInTx(ctx, tx, id, "integration", time.Now().UTC()); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}

	// every flip rewrites both rows, so later flips see a different heap order
	for _, id := range []string{"fy-b", "fy-a", "fy-b", "fy-a"} {
		require.NoError(t, setCurrent(id), "set current %s", id)

		current, err := repo.FindCurrentFiscalYear(ctx)
		require.NoError(t, err)
		assert.Equal(t, id, current.FiscalYearID)
	}

	years, err := repo.ListFiscalYears(ctx)
	require.NoError(t, err)
	currentCount := 0
	for _, fy := range years {
		if fy.IsCurrent {
			currentCount++
		}
	}
	assert.Equal(t, 1, currentCount)
}

func TestFiscalYearRepository_SetCurrentUnknownYear(t *testing.T) {
	pool := setupFiscalYearDB(t)
	repo := &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	err = repo.SetCurrentFiscalYearInTx(ctx, tx, "fy-missing", "integration", time.Now().UTC())
	assert.Error(t, err)
}

func TestFiscalYearRepository_OneDayYearAccepted(t *testing.T) {
	pool := setupFiscalYearDB(t)
	repo := &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}

	saveYear(t, pool, repo, fiscalYear("fy-day", "FY-STUB", day(2025, 1, 1), day(2025, 1, 1), false))

	fy, err := repo.FindFiscalYearByID(context.Background(), "fy-day")
	require.NoError(t, err)
	assert.True(t, fy.StartDate.Equal(fy.EndDate))
}

func TestFiscalYearRepository_PostingLookupBlocksClose(t *testing.T) {
	pool := setupFiscalYearDB(t)
	repo := &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
	ctx := context.Background()

	saveYear(t, pool, repo, fiscalYear("fy-a", "FY2023", day(2023, 1, 1), day(2023, 12, 31), false))

	posting, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = posting.Rollback(ctx) }()
	_, err = repo.FindFiscalYearByDateInTx(ctx, posting, day(2023, 6, 30))
	require.NoError(t, err)

	closing, err := pool.BeginTx(ctx, pgx.TxOptions{})
	require.NoError(t, err)
	defer func() { _ = closing.Rollback(ctx) }()
	_, err = closing.Exec(ctx, `SET LOCAL lock_timeout = '200ms';`)
	require.NoError(t, err)

	_, err = repo.FindFiscalYearByIDForUpdate(ctx, closing, "fy-a")
	assert.Error(t, err, "close must wait for the posting transaction")
}
