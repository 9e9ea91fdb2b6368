package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	"github.com/kipuerp/ledger_core/internal/models"
	"github.com/kipuerp/ledger_core/internal/utils/mapping"
)

const periodColumns = `period_id, organization_id, start_date, end_date, status, last_correlativo, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (models.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID,
		&m.OrganizationID,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.LastCorrelativo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPeriodByID retrieves a period by id within an organization.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE organization_id = $1 AND period_id = $2;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, organizationID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period by id %s: %w", periodID, err)
	}
	d := mapping.ToDomainPeriod(m)
	return &d, nil
}

// FindPeriodByRange retrieves the period with the exact (start, end) window.
func (r *PgxPeriodRepository) FindPeriodByRange(ctx context.Context, organizationID string, start, end time.Time) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE organization_id = $1 AND start_date = $2 AND end_date = $3;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, organizationID, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period by range: %w", err)
	}
	d := mapping.ToDomainPeriod(m)
	return &d, nil
}

// ListPeriods retrieves all periods for an organization, newest first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, organizationID string) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE organization_id = $1 ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Period, error) {
		return scanPeriod(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan periods: %w", err)
	}
	return mapping.ToDomainPeriodSlice(ms), nil
}

// SavePeriod inserts a new period. An existing window yields ErrDuplicate.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	m := mapping.ToModelPeriod(period)

	query := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.OrganizationID,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.LastCorrelativo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: period starting %s", apperrors.ErrDuplicate, m.StartDate.Format("2006-01"))
		}
		return fmt.Errorf("failed to save period %s: %w", m.PeriodID, err)
	}
	return nil
}

// LockPeriod transitions an OPEN period to LOCKED. The status guard in the
// WHERE clause makes the lock idempotent to detect: zero rows either means
// the period is missing or it is already locked.
func (r *PgxPeriodRepository) LockPeriod(ctx context.Context, organizationID, periodID, actor string, now time.Time) error {
	query := `
		UPDATE periods
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE organization_id = $4 AND period_id = $5 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, models.PeriodLocked, now, actor, organizationID, periodID, models.PeriodOpen)
	if err != nil {
		return fmt.Errorf("failed to lock period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindPeriodByID(ctx, organizationID, periodID); err != nil {
			return err
		}
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodLocked, periodID)
	}
	return nil
}

// EnsurePeriodForUpdateInTx resolves or creates the period for the given
// month window and locks its row for the remainder of the transaction. The
// row lock serializes correlativo allocation across concurrent entry creates.
func (r *PgxPeriodRepository) EnsurePeriodForUpdateInTx(ctx context.Context, tx pgx.Tx, organizationID string, start, end time.Time, actor string, now time.Time) (*domain.Period, error) {
	selectQuery := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE organization_id = $1 AND start_date = $2 AND end_date = $3
		FOR UPDATE;
	`
	m, err := scanPeriod(tx.QueryRow(ctx, selectQuery, organizationID, start, end))
	if err == nil {
		d := mapping.ToDomainPeriod(m)
		return &d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to lock period row: %w", err)
	}

	insertQuery := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $6, $7)
		ON CONFLICT (organization_id, start_date, end_date) DO NOTHING;
	`
	periodID := uuid.NewString()
	_, err = tx.Exec(ctx, insertQuery, periodID, organizationID, start, end, models.PeriodOpen, now, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	// Re-select with the lock: either our insert or the one that won the
	// ON CONFLICT race.
	m, err = scanPeriod(tx.QueryRow(ctx, selectQuery, organizationID, start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to re-read created period: %w", err)
	}
	d := mapping.ToDomainPeriod(m)
	return &d, nil
}

// NextCorrelativoInTx atomically advances and returns the period's
// correlativo counter. Callers hold the period row lock, so the counter can
// never hand out the same value twice.
func (r *PgxPeriodRepository) NextCorrelativoInTx(ctx context.Context, tx pgx.Tx, periodID string) (int64, error) {
	query := `
		UPDATE periods
		SET last_correlativo = last_correlativo + 1
		WHERE period_id = $1
		RETURNING last_correlativo;
	`
	var next int64
	if err := tx.QueryRow(ctx, query, periodID).Scan(&next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to advance correlativo for period %s: %w", periodID, err)
	}
	return next, nil
}
