// Package mappers transforms upstream business events into balanced journal
// entry lines. Mappers are pure: no persistence access, and their output must
// satisfy accounting.ValidateLines unmodified. Lines reference accounts by
// chart code; the ledger resolves codes to account ids before persisting.
package mappers

import (
	"sort"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Well-known posting account codes from the default chart (PCGE-flavored).
const (
	CodeCash        = "101"   // Caja
	CodeBank        = "104"   // Cuentas corrientes
	CodeReceivables = "121"   // Facturas por cobrar
	CodeInventory   = "201"   // Mercaderías
	CodeIGV         = "40111" // IGV por pagar / crédito fiscal
	CodePayables    = "421"   // Facturas por pagar
	CodeCOGS        = "691"   // Costo de ventas
	CodeSales       = "701"   // Ventas de mercaderías
)

func debitLine(code, description string, amount decimal.Decimal) domain.EntryLine {
	return domain.EntryLine{AccountCode: code, Description: description, Debit: amount, Credit: decimal.Zero}
}

func creditLine(code, description string, amount decimal.Decimal) domain.EntryLine {
	return domain.EntryLine{AccountCode: code, Description: description, Debit: decimal.Zero, Credit: amount}
}

type lineKey struct {
	code        string
	description string
}

// aggregate merges lines sharing the same (account code, description) by
// summing their debit and credit amounts, keeping one line per distinct pair.
// Output order is deterministic: debit lines first, then by code.
func aggregate(lines []domain.EntryLine) []domain.EntryLine {
	merged := make(map[lineKey]*domain.EntryLine, len(lines))
	order := make([]lineKey, 0, len(lines))
	for _, l := range lines {
		key := lineKey{code: l.AccountCode, description: l.Description}
		if existing, ok := merged[key]; ok {
			existing.Debit = existing.Debit.Add(l.Debit)
			existing.Credit = existing.Credit.Add(l.Credit)
			continue
		}
		copied := l
		merged[key] = &copied
		order = append(order, key)
	}
	out := make([]domain.EntryLine, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Debit.IsPositive() != out[j].Debit.IsPositive() {
			return out[i].Debit.IsPositive()
		}
		return out[i].AccountCode < out[j].AccountCode
	})
	return out
}
