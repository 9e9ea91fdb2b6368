package pgsql_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	"github.com/kipuerp/ledger_core/internal/repositories/database/pgsql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// These tests run against a real PostgreSQL instance pointed at by
// TEST_PGSQL_URL and are skipped otherwise. Each test works in its own
// organization, so a shared database stays clean enough between runs.

func openTestRepos(t *testing.T) (*pgxpool.Pool, portsrepo.RepositoryProvider) {
	t.Helper()
	url := os.Getenv("TEST_PGSQL_URL")
	if url == "" {
		t.Skip("TEST_PGSQL_URL not set; skipping database tests")
	}
	migrateTestDB(t, url)

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool, pgsql.NewRepositoryProvider(pool)
}

func migrateTestDB(t *testing.T, url string) {
	t.Helper()
	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to migrate test database: %v", err)
	}
}

func seedPostingAccount(t *testing.T, repos portsrepo.RepositoryProvider, organizationID string) string {
	t.Helper()
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		Code:           "101",
		Name:           "Caja",
		AccountType:    domain.Asset,
		Level:          1,
		IsPosting:      true,
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: "test", LastUpdatedAt: now, LastUpdatedBy: "test"},
	}
	require.NoError(t, repos.AccountRepo.SaveAccount(context.Background(), account))
	return account.AccountID
}

func buildTestEntry(organizationID, accountID string, date time.Time) (domain.JournalEntry, []domain.EntryLine) {
	now := time.Now().UTC()
	entryID := uuid.NewString()
	amount := decimal.NewFromInt(100)
	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		Date:           date,
		Description:    "asiento de prueba",
		Source:         domain.SourceManual,
		Status:         domain.StatusDraft,
		AuditCode:      uuid.NewString(),
		CurrencyCode:   "PEN",
		DebitTotal:     amount,
		CreditTotal:    amount,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: "test", LastUpdatedAt: now, LastUpdatedBy: "test"},
	}
	lines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: accountID, Debit: amount},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: accountID, Credit: amount},
	}
	return entry, lines
}

// Concurrent creations in the same month must each get their own correlativo
// with no gaps, since allocation happens on the locked period row inside the
// create transaction.
func TestCreateEntry_ConcurrentCreationsGetDistinctCorrelativos(t *testing.T) {
	_, repos := openTestRepos(t)
	ctx := context.Background()
	organizationID := uuid.NewString()
	accountID := seedPostingAccount(t, repos, organizationID)
	date := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)

	const workers = 8
	correlativos := make(chan string, workers)
	failures := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, lines := buildTestEntry(organizationID, accountID, date)
			created, err := repos.JournalRepo.CreateEntry(ctx, entry, lines)
			if err != nil {
				failures <- err
				return
			}
			correlativos <- created.Correlativo
		}()
	}
	wg.Wait()
	close(correlativos)
	close(failures)

	for err := range failures {
		t.Fatalf("concurrent create failed: %v", err)
	}

	seen := make(map[string]struct{}, workers)
	for c := range correlativos {
		seen[c] = struct{}{}
	}
	require.Len(t, seen, workers)
	for i := int64(1); i <= workers; i++ {
		require.Contains(t, seen, domain.FormatCorrelativo(i))
	}
}

// Past 999 the correlativo grows a digit; listing must still put A1000 above
// A999 within the same date.
func TestListEntries_OrdersCorrelativosPastThousand(t *testing.T) {
	pool, repos := openTestRepos(t)
	ctx := context.Background()
	organizationID := uuid.NewString()
	accountID := seedPostingAccount(t, repos, organizationID)
	date := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)

	entry, lines := buildTestEntry(organizationID, accountID, date)
	first, err := repos.JournalRepo.CreateEntry(ctx, entry, lines)
	require.NoError(t, err)
	require.Equal(t, "A001", first.Correlativo)

	_, err = pool.Exec(ctx, `UPDATE periods SET last_correlativo = 998 WHERE period_id = $1;`, first.PeriodID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		entry, lines := buildTestEntry(organizationID, accountID, date)
		_, err := repos.JournalRepo.CreateEntry(ctx, entry, lines)
		require.NoError(t, err)
	}

	entries, total, err := repos.JournalRepo.ListEntries(ctx, organizationID, portsrepo.EntryFilters{}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(4), total)

	got := make([]string, len(entries))
	for i := range entries {
		got[i] = entries[i].Correlativo
	}
	require.Equal(t, []string{"A1001", "A1000", "A999", "A001"}, got)
}
