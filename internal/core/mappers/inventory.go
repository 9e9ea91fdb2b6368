package mappers

import (
	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// MapInventoryAdjustment books a stock count difference at cost. A write-up
// debits inventory against cost of sales; a write-down does the opposite.
func MapInventoryAdjustment(ev domain.InventoryAdjustmentEvent) []domain.EntryLine {
	if ev.Increase {
		return aggregate([]domain.EntryLine{
			debitLine(CodeInventory, ev.Description, ev.Amount),
			creditLine(CodeCOGS, ev.Description, ev.Amount),
		})
	}
	return aggregate([]domain.EntryLine{
		debitLine(CodeCOGS, ev.Description, ev.Amount),
		creditLine(CodeInventory, ev.Description, ev.Amount),
	})
}
