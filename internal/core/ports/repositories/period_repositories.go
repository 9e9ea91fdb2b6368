package repositories

import (
	"context"
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PeriodReader defines read operations for accounting period data.
type PeriodReader interface {
	// FindPeriodByID retrieves a period by id within an organization.
	FindPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.Period, error)

	// FindPeriodByRange retrieves the period with the exact (start, end) window.
	FindPeriodByRange(ctx context.Context, organizationID string, start, end time.Time) (*domain.Period, error)

	// ListPeriods retrieves all periods for an organization, newest first.
	ListPeriods(ctx context.Context, organizationID string) ([]domain.Period, error)
}

// PeriodWriter defines write operations for accounting period data.
type PeriodWriter interface {
	// SavePeriod persists a new period; an existing window yields apperrors.ErrDuplicate.
	SavePeriod(ctx context.Context, period domain.Period) error

	// LockPeriod transitions an OPEN period to LOCKED. Already-locked periods
	// surface apperrors.ErrPeriodLocked.
	LockPeriod(ctx context.Context, organizationID, periodID, actor string, now time.Time) error
}

// PeriodTxSupport exposes the period operations the entry-create transaction
// runs against an in-flight pgx transaction: resolve-or-create with a row
// lock, and correlativo allocation from the period counter.
type PeriodTxSupport interface {
	// EnsurePeriodForUpdateInTx resolves or creates the period for the given
	// month window and returns it with its row locked for the remainder of
	// the transaction.
	EnsurePeriodForUpdateInTx(ctx context.Context, tx pgx.Tx, organizationID string, start, end time.Time, actor string, now time.Time) (*domain.Period, error)

	// NextCorrelativoInTx atomically advances and returns the period's
	// correlativo counter.
	NextCorrelativoInTx(ctx context.Context, tx pgx.Tx, periodID string) (int64, error)
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
	PeriodTxSupport
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities.
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
