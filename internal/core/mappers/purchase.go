package mappers

import (
	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/utils/accounting"
)

// MapPurchase turns a recorded purchase into balanced lines: an inventory
// debit for the net, a tax-credit debit for the IGV, and a credit for the
// tax-inclusive total against cash or accounts payable depending on whether
// the purchase is on credit.
func MapPurchase(ev domain.PurchaseEvent) []domain.EntryLine {
	net, tax := accounting.SplitIGV(ev.Total)

	payCode := CodeCash
	if ev.OnCredit {
		payCode = CodePayables
	}

	lines := []domain.EntryLine{
		debitLine(CodeInventory, ev.Description, net),
	}
	if tax.IsPositive() {
		lines = append(lines, debitLine(CodeIGV, ev.Description, tax))
	}
	lines = append(lines, creditLine(payCode, ev.Description, ev.Total))
	return aggregate(lines)
}
