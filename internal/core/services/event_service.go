package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/core/mappers"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/dto"
	"github.com/kipuerp/ledger_core/internal/middleware"
)

var (
	ErrEventRefRequired   = errors.New("event reference is required")
	ErrEventAmountInvalid = errors.New("event amount must be positive")
	ErrPaymentDirection   = errors.New("unknown payment direction")
)

// eventService turns upstream business events into posted journal entries.
// Recording is idempotent on (source, reference): replaying an event returns
// the entry recorded the first time.
type eventService struct {
	ledgerSvc   portssvc.LedgerWriterSvc
	chartSvc    portssvc.ChartWriterSvc
	journalRepo portsrepo.JournalReader
}

// NewEventService creates a new event recording service.
func NewEventService(ledgerSvc portssvc.LedgerWriterSvc, chartSvc portssvc.ChartWriterSvc, journalRepo portsrepo.JournalReader) portssvc.EventSvcFacade {
	return &eventService{ledgerSvc: ledgerSvc, chartSvc: chartSvc, journalRepo: journalRepo}
}

var _ portssvc.EventSvcFacade = (*eventService)(nil)

// record runs the shared pipeline: dedupe, bootstrap the chart, create the
// entry from mapped lines. On a create-side duplicate (two replays racing
// past the pre-check) the stored entry is fetched and returned instead.
func (s *eventService) record(ctx context.Context, tenant domain.TenantContext, source domain.EntrySource, ref string, date time.Time, description, currencyCode string, lines []domain.EntryLine, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	if ref == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEventRefRequired)
	}

	existing, err := s.journalRepo.FindEntryBySourceRef(ctx, tenant.OrganizationID, source, ref)
	if err == nil {
		logger.Info("Event already recorded, returning stored entry",
			slog.String("source", string(source)), slog.String("ref", ref), slog.String("entry_id", existing.EntryID))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for recorded event: %w", err)
	}

	if err := s.chartSvc.EnsureDefaults(ctx, tenant, actor); err != nil {
		return nil, fmt.Errorf("failed to bootstrap ledger defaults: %w", err)
	}

	req := dto.CreateEntryRequest{
		Date:         date,
		Description:  description,
		Source:       source,
		CurrencyCode: currencyCode,
		SourceRef:    &ref,
		Lines:        toLineRequests(lines),
	}
	entry, err := s.ledgerSvc.CreateEntry(ctx, tenant, req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.journalRepo.FindEntryBySourceRef(ctx, tenant.OrganizationID, source, ref)
		}
		return nil, err
	}
	return entry, nil
}

func toLineRequests(lines []domain.EntryLine) []dto.LineRequest {
	reqs := make([]dto.LineRequest, len(lines))
	for i, l := range lines {
		reqs[i] = dto.LineRequest{
			AccountCode: l.AccountCode,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return reqs
}

// RecordSale books revenue, the IGV split and, when a cost is known, the
// cost-of-goods movement for a completed sale.
func (s *eventService) RecordSale(ctx context.Context, tenant domain.TenantContext, event domain.SaleEvent, actor string) (*domain.JournalEntry, error) {
	if !event.Total.IsPositive() || event.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEventAmountInvalid)
	}
	lines := mappers.MapSale(event)
	return s.record(ctx, tenant, domain.SourceSale, event.InvoiceRef, event.Date, event.Description, event.CurrencyCode, lines, actor)
}

// RecordPurchase books inventory and the IGV credit for a recorded purchase.
func (s *eventService) RecordPurchase(ctx context.Context, tenant domain.TenantContext, event domain.PurchaseEvent, actor string) (*domain.JournalEntry, error) {
	if !event.Total.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEventAmountInvalid)
	}
	lines := mappers.MapPurchase(event)
	return s.record(ctx, tenant, domain.SourcePurchase, event.InvoiceRef, event.Date, event.Description, event.CurrencyCode, lines, actor)
}

// RecordPayment books money against an open receivable or payable.
func (s *eventService) RecordPayment(ctx context.Context, tenant domain.TenantContext, event domain.PaymentEvent, actor string) (*domain.JournalEntry, error) {
	if !event.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEventAmountInvalid)
	}
	if event.Direction != domain.PaymentInbound && event.Direction != domain.PaymentOutbound {
		return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrPaymentDirection, event.Direction)
	}
	lines := mappers.MapPayment(event)
	return s.record(ctx, tenant, domain.SourcePayment, event.Ref, event.Date, event.Description, event.CurrencyCode, lines, actor)
}

// RecordCreditNote reverses revenue and IGV for a returned or discounted sale.
func (s *eventService) RecordCreditNote(ctx context.Context, tenant domain.TenantContext, event domain.CreditNoteEvent, actor string) (*domain.JournalEntry, error) {
	if !event.Total.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEventAmountInvalid)
	}
	lines := mappers.MapCreditNote(event)
	return s.record(ctx, tenant, domain.SourceCreditNote, event.NoteRef, event.Date, event.Description, event.CurrencyCode, lines, actor)
}

// RecordDebitNote books additional charges on top of an existing sale.
func (s *eventService) RecordDebitNote(ctx context.Context, tenant domain.TenantContext, event domain.DebitNoteEvent, actor string) (*domain.JournalEntry, error) {
	if !event.Total.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEventAmountInvalid)
	}
	lines := mappers.MapDebitNote(event)
	return s.record(ctx, tenant, domain.SourceDebitNote, event.NoteRef, event.Date, event.Description, event.CurrencyCode, lines, actor)
}

// RecordInventoryAdjustment books a stock write-up or write-down at cost.
func (s *eventService) RecordInventoryAdjustment(ctx context.Context, tenant domain.TenantContext, event domain.InventoryAdjustmentEvent, actor string) (*domain.JournalEntry, error) {
	if !event.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEventAmountInvalid)
	}
	lines := mappers.MapInventoryAdjustment(event)
	return s.record(ctx, tenant, domain.SourceAdjustment, event.Ref, event.Date, event.Description, event.CurrencyCode, lines, actor)
}
