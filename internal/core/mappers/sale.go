package mappers

import (
	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/utils/accounting"
)

// MapSale turns a completed sale into balanced lines: a cash or receivable
// debit for the tax-inclusive total, a revenue credit for the net, an IGV
// liability credit for the tax, and a COGS debit / inventory credit at the
// known product cost when one is supplied.
func MapSale(ev domain.SaleEvent) []domain.EntryLine {
	net, tax := accounting.SplitIGV(ev.Total)

	receiveCode := CodeReceivables
	if ev.CashSale {
		receiveCode = CodeCash
	}

	lines := []domain.EntryLine{
		debitLine(receiveCode, ev.Description, ev.Total),
		creditLine(CodeSales, ev.Description, net),
	}
	if tax.IsPositive() {
		lines = append(lines, creditLine(CodeIGV, ev.Description, tax))
	}
	if ev.Cost.IsPositive() {
		lines = append(lines,
			debitLine(CodeCOGS, ev.Description, ev.Cost),
			creditLine(CodeInventory, ev.Description, ev.Cost),
		)
	}
	return aggregate(lines)
}
