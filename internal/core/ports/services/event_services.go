package services

import (
	"context"

	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// EventSvcFacade maps business events into posted journal entries.
//
// Each method is idempotent on the event reference: the same event
// recorded twice returns the already-recorded entry instead of a second
// one.
type EventSvcFacade interface {
	RecordSale(ctx context.Context, tenant domain.TenantContext, event domain.SaleEvent, actor string) (*domain.JournalEntry, error)
	RecordPurchase(ctx context.Context, tenant domain.TenantContext, event domain.PurchaseEvent, actor string) (*domain.JournalEntry, error)
	RecordPayment(ctx context.Context, tenant domain.TenantContext, event domain.PaymentEvent, actor string) (*domain.JournalEntry, error)
	RecordCreditNote(ctx context.Context, tenant domain.TenantContext, event domain.CreditNoteEvent, actor string) (*domain.JournalEntry, error)
	RecordDebitNote(ctx context.Context, tenant domain.TenantContext, event domain.DebitNoteEvent, actor string) (*domain.JournalEntry, error)
	RecordInventoryAdjustment(ctx context.Context, tenant domain.TenantContext, event domain.InventoryAdjustmentEvent, actor string) (*domain.JournalEntry, error)
}
