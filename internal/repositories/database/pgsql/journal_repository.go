package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	"github.com/kipuerp/ledger_core/internal/models"
	"github.com/kipuerp/ledger_core/internal/utils/mapping"
)

const entryColumns = `entry_id, organization_id, company_id, period_id, entry_date, description, source, status, correlativo, audit_code, currency_code, exchange_rate, debit_total, credit_total, source_ref, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, description, debit, credit`

type PgxJournalRepository struct {
	BaseRepository
	periodRepo portsrepo.PeriodTxSupport
}

// newPgxJournalRepository creates a new repository for journal entry data.
// The period dependency runs inside the same transaction as the entry insert.
func newPgxJournalRepository(pool *pgxpool.Pool, periodRepo portsrepo.PeriodTxSupport) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		periodRepo:     periodRepo,
	}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.CompanyID,
		&m.PeriodID,
		&m.Date,
		&m.Description,
		&m.Source,
		&m.Status,
		&m.Correlativo,
		&m.AuditCode,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.DebitTotal,
		&m.CreditTotal,
		&m.SourceRef,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.EntryLine, error) {
	var m models.EntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Description,
		&m.Debit,
		&m.Credit,
	)
	return m, err
}

// CreateEntry persists an entry and its lines in one transaction. The period
// for the entry date is resolved or created with its row locked, the status
// checked, the correlativo allocated from the period counter, and the
// (organization, source, source_ref) unique index left to catch concurrent
// replays of the same upstream document.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	start, end := domain.MonthBounds(entry.Date)
	period, err := r.periodRepo.EnsurePeriodForUpdateInTx(ctx, tx, entry.OrganizationID, start, end, entry.CreatedBy, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve period: %w", err)
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodLocked, period.PeriodID)
	}

	next, err := r.periodRepo.NextCorrelativoInTx(ctx, tx, period.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate correlativo: %w", err)
	}
	entry.PeriodID = period.PeriodID
	entry.Correlativo = domain.FormatCorrelativo(next)

	m := mapping.ToModelEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.OrganizationID,
		m.CompanyID,
		m.PeriodID,
		m.Date,
		m.Description,
		m.Source,
		m.Status,
		m.Correlativo,
		m.AuditCode,
		m.CurrencyCode,
		m.ExchangeRate,
		m.DebitTotal,
		m.CreditTotal,
		m.SourceRef,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: entry for %s %v", apperrors.ErrDuplicate, m.Source, m.SourceRef)
		}
		return nil, fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range lines {
		ml := mapping.ToModelLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.Description,
			ml.Debit,
			ml.Credit,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert lines for entry %s: %w", m.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1 AND entry_id = $2;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, organizationID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by id %s: %w", entryID, err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainEntry(m)
	d.Lines = lines[entryID]
	return &d, nil
}

// FindEntryBySourceRef retrieves the entry recorded for an upstream document.
func (r *PgxJournalRepository) FindEntryBySourceRef(ctx context.Context, organizationID string, source domain.EntrySource, sourceRef string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1 AND source = $2 AND source_ref = $3;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, organizationID, string(source), sourceRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by source ref %s/%s: %w", source, sourceRef, err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, []string{m.EntryID})
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainEntry(m)
	d.Lines = lines[m.EntryID]
	return &d, nil
}

// buildEntryFilter renders the shared WHERE clause for ListEntries and its
// count query. Arguments start at $2; $1 is the organization id.
func buildEntryFilter(filters portsrepo.EntryFilters) (string, []any) {
	clause := ""
	args := make([]any, 0, 5)
	next := 2

	if filters.DateFrom != nil {
		clause += fmt.Sprintf(" AND e.entry_date >= $%d", next)
		args = append(args, *filters.DateFrom)
		next++
	}
	if filters.DateTo != nil {
		clause += fmt.Sprintf(" AND e.entry_date <= $%d", next)
		args = append(args, *filters.DateTo)
		next++
	}
	if len(filters.Sources) > 0 {
		sources := make([]string, len(filters.Sources))
		for i, s := range filters.Sources {
			sources[i] = string(s)
		}
		clause += fmt.Sprintf(" AND e.source = ANY($%d)", next)
		args = append(args, sources)
		next++
	}
	if len(filters.Statuses) > 0 {
		statuses := make([]string, len(filters.Statuses))
		for i, s := range filters.Statuses {
			statuses[i] = string(s)
		}
		clause += fmt.Sprintf(" AND e.status = ANY($%d)", next)
		args = append(args, statuses)
		next++
	}
	if len(filters.AccountIDs) > 0 {
		clause += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM journal_entry_lines l WHERE l.entry_id = e.entry_id AND l.account_id = ANY($%d))", next)
		args = append(args, filters.AccountIDs)
		next++
	}
	return clause, args
}

// ListEntries retrieves one page of entries with their lines, ordered by date
// descending then correlativo descending, plus the unpaged total. Correlativos
// compare by length first: A1000 outranks A999.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID string, filters portsrepo.EntryFilters, limit, offset int) ([]domain.JournalEntry, int64, error) {
	clause, args := buildEntryFilter(filters)
	baseArgs := append([]any{organizationID}, args...)

	countQuery := `SELECT COUNT(*) FROM journal_entries e WHERE e.organization_id = $1` + clause + `;`
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, baseArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT %s FROM journal_entries e
		WHERE e.organization_id = $1%s
		ORDER BY e.entry_date DESC, length(e.correlativo) DESC, e.correlativo DESC
		LIMIT $%d OFFSET $%d;
	`, qualifyEntryColumns("e"), clause, len(baseArgs)+1, len(baseArgs)+2)
	pageArgs := append(baseArgs, limit, offset)

	rows, err := r.Pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalEntry, error) {
		return scanEntry(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan entries: %w", err)
	}

	entries := mapping.ToDomainEntrySlice(ms)
	if len(entries) > 0 {
		ids := make([]string, len(entries))
		for i := range entries {
			ids[i] = entries[i].EntryID
		}
		linesByEntry, err := r.findLinesByEntryIDs(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range entries {
			entries[i].Lines = linesByEntry[entries[i].EntryID]
		}
	}
	return entries, total, nil
}

// qualifyEntryColumns prefixes each entry column with a table alias.
func qualifyEntryColumns(alias string) string {
	out := ""
	for i, col := range []string{"entry_id", "organization_id", "company_id", "period_id", "entry_date", "description", "source", "status", "correlativo", "audit_code", "currency_code", "exchange_rate", "debit_total", "credit_total", "source_ref", "created_at", "created_by", "last_updated_at", "last_updated_by"} {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + col
	}
	return out
}

// findLinesByEntryIDs fetches lines for a batch of entries, keyed by entry id.
func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = ANY($1) ORDER BY line_id;`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry lines: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.EntryLine, error) {
		return scanLine(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan entry lines: %w", err)
	}

	out := make(map[string][]domain.EntryLine, len(entryIDs))
	for _, m := range ms {
		out[m.EntryID] = append(out[m.EntryID], mapping.ToDomainLine(m))
	}
	return out, nil
}

// ListLinesByAccount retrieves one page of lines posted to an account,
// newest entries first.
func (r *PgxJournalRepository) ListLinesByAccount(ctx context.Context, organizationID, accountID string, limit, offset int) ([]domain.EntryLine, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.organization_id = $1 AND l.account_id = $2;
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, organizationID, accountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count account lines: %w", err)
	}

	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.description, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.organization_id = $1 AND l.account_id = $2
		ORDER BY e.entry_date DESC, length(e.correlativo) DESC, e.correlativo DESC, l.line_id
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query account lines: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.EntryLine, error) {
		return scanLine(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan account lines: %w", err)
	}
	return mapping.ToDomainLineSlice(ms), total, nil
}

// ReplaceEntryLines atomically replaces a draft entry's line set and updates
// its header fields and stored totals.
func (r *PgxJournalRepository) ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET entry_date = $1, description = $2, debit_total = $3, credit_total = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $7 AND entry_id = $8 AND status = $9;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.Date,
		m.Description,
		m.DebitTotal,
		m.CreditTotal,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.OrganizationID,
		m.EntryID,
		models.Draft,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Gone, or no longer a draft.
		return fmt.Errorf("%w: entry %s is not an editable draft", apperrors.ErrConflict, m.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to clear lines for entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range lines {
		ml := mapping.ToModelLine(line)
		batch.Queue(lineQuery, ml.LineID, ml.EntryID, ml.AccountID, ml.Description, ml.Debit, ml.Credit)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert replacement lines for entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateEntryStatus transitions entry status from -> to, guarded by the
// current status. A stale guard surfaces apperrors.ErrConflict.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, organizationID, entryID string, from, to domain.EntryStatus, actor string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE organization_id = $4 AND entry_id = $5 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, string(to), now, actor, organizationID, entryID, string(from))
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindEntryByID(ctx, organizationID, entryID); err != nil {
			return err
		}
		return fmt.Errorf("%w: entry %s is not %s", apperrors.ErrConflict, entryID, from)
	}
	return nil
}

// DeleteEntry hard-deletes a draft entry and its lines.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, organizationID, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entryID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE organization_id = $1 AND entry_id = $2 AND status = $3;`, organizationID, entryID, models.Draft)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
