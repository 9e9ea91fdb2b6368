package mappers

import (
	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// MapPayment settles an open balance. Inbound payments collect a receivable
// into cash; outbound payments settle a payable from cash. Two lines, no tax
// component: tax was recognized when the underlying document was booked.
func MapPayment(ev domain.PaymentEvent) []domain.EntryLine {
	if ev.Direction == domain.PaymentOutbound {
		return aggregate([]domain.EntryLine{
			debitLine(CodePayables, ev.Description, ev.Amount),
			creditLine(CodeCash, ev.Description, ev.Amount),
		})
	}
	return aggregate([]domain.EntryLine{
		debitLine(CodeCash, ev.Description, ev.Amount),
		creditLine(CodeReceivables, ev.Description, ev.Amount),
	})
}
