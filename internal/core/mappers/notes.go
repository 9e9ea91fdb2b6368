package mappers

import (
	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/utils/accounting"
)

// MapCreditNote reverses the revenue side of a sale: revenue and IGV debits
// for the net/tax split, and a receivables credit for the full total.
func MapCreditNote(ev domain.CreditNoteEvent) []domain.EntryLine {
	net, tax := accounting.SplitIGV(ev.Total)

	lines := []domain.EntryLine{
		debitLine(CodeSales, ev.Description, net),
	}
	if tax.IsPositive() {
		lines = append(lines, debitLine(CodeIGV, ev.Description, tax))
	}
	lines = append(lines, creditLine(CodeReceivables, ev.Description, ev.Total))
	return aggregate(lines)
}

// MapDebitNote adds charges to an existing sale: a receivables debit for the
// full total against revenue and IGV credits for the net/tax split.
func MapDebitNote(ev domain.DebitNoteEvent) []domain.EntryLine {
	net, tax := accounting.SplitIGV(ev.Total)

	lines := []domain.EntryLine{
		debitLine(CodeReceivables, ev.Description, ev.Total),
		creditLine(CodeSales, ev.Description, net),
	}
	if tax.IsPositive() {
		lines = append(lines, creditLine(CodeIGV, ev.Description, tax))
	}
	return aggregate(lines)
}
