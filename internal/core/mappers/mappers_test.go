package mappers_test

import (
	"testing"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/core/mappers"
	"github.com/kipuerp/ledger_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func findLine(t *testing.T, lines []domain.EntryLine, code string) domain.EntryLine {
	t.Helper()
	for _, l := range lines {
		if l.AccountCode == code {
			return l
		}
	}
	t.Fatalf("no line for account code %s", code)
	return domain.EntryLine{}
}

func assertBalanced(t *testing.T, lines []domain.EntryLine) {
	t.Helper()
	require.NoError(t, accounting.ValidateLines(lines))
	debit, credit := accounting.SumLines(lines)
	assert.True(t, debit.Equal(credit), "debits %s != credits %s", debit, credit)
}

func TestMapSale(t *testing.T) {
	ev := domain.SaleEvent{
		InvoiceRef:  "F001-00042",
		Description: "venta mostrador",
		Total:       d("118.00"),
		Cost:        d("60.00"),
	}

	lines := mappers.MapSale(ev)
	assertBalanced(t, lines)
	require.Len(t, lines, 5)

	assert.True(t, findLine(t, lines, mappers.CodeReceivables).Debit.Equal(d("118.00")))
	assert.True(t, findLine(t, lines, mappers.CodeSales).Credit.Equal(d("100.00")))
	assert.True(t, findLine(t, lines, mappers.CodeIGV).Credit.Equal(d("18.00")))
	assert.True(t, findLine(t, lines, mappers.CodeCOGS).Debit.Equal(d("60.00")))
	assert.True(t, findLine(t, lines, mappers.CodeInventory).Credit.Equal(d("60.00")))
}

func TestMapSaleCashNoCost(t *testing.T) {
	lines := mappers.MapSale(domain.SaleEvent{
		Description: "venta contado",
		Total:       d("59.00"),
		CashSale:    true,
	})
	assertBalanced(t, lines)
	require.Len(t, lines, 3)
	assert.True(t, findLine(t, lines, mappers.CodeCash).Debit.Equal(d("59.00")))
	assert.True(t, findLine(t, lines, mappers.CodeSales).Credit.Equal(d("50.00")))
	assert.True(t, findLine(t, lines, mappers.CodeIGV).Credit.Equal(d("9.00")))
}

func TestMapSaleAggregatesSameAccountAndDescription(t *testing.T) {
	// Cash sale with no tax-free remainder still aggregates cleanly; the
	// interesting case is COGS cost hitting an account a previous line used.
	lines := mappers.MapSale(domain.SaleEvent{
		Description: "venta",
		Total:       d("118.00"),
		Cost:        d("0"),
	})
	seen := map[string]bool{}
	for _, l := range lines {
		key := l.AccountCode + "|" + l.Description
		assert.False(t, seen[key], "duplicate line for %s", key)
		seen[key] = true
	}
}

func TestMapPurchase(t *testing.T) {
	t.Run("cash purchase credits cash", func(t *testing.T) {
		lines := mappers.MapPurchase(domain.PurchaseEvent{
			Description: "compra mercadería",
			Total:       d("118.00"),
		})
		assertBalanced(t, lines)
		require.Len(t, lines, 3)
		assert.True(t, findLine(t, lines, mappers.CodeInventory).Debit.Equal(d("100.00")))
		assert.True(t, findLine(t, lines, mappers.CodeIGV).Debit.Equal(d("18.00")))
		assert.True(t, findLine(t, lines, mappers.CodeCash).Credit.Equal(d("118.00")))
	})

	t.Run("credit purchase credits payables", func(t *testing.T) {
		lines := mappers.MapPurchase(domain.PurchaseEvent{
			Description: "compra al crédito",
			Total:       d("118.00"),
			OnCredit:    true,
		})
		assertBalanced(t, lines)
		assert.True(t, findLine(t, lines, mappers.CodePayables).Credit.Equal(d("118.00")))
	})
}

func TestMapCreditNote(t *testing.T) {
	lines := mappers.MapCreditNote(domain.CreditNoteEvent{
		Description: "devolución",
		Total:       d("23.60"),
	})
	assertBalanced(t, lines)
	require.Len(t, lines, 3)
	assert.True(t, findLine(t, lines, mappers.CodeSales).Debit.Equal(d("20.00")))
	assert.True(t, findLine(t, lines, mappers.CodeIGV).Debit.Equal(d("3.60")))
	assert.True(t, findLine(t, lines, mappers.CodeReceivables).Credit.Equal(d("23.60")))
}

func TestMapDebitNote(t *testing.T) {
	lines := mappers.MapDebitNote(domain.DebitNoteEvent{
		Description: "recargo",
		Total:       d("11.80"),
	})
	assertBalanced(t, lines)
	assert.True(t, findLine(t, lines, mappers.CodeReceivables).Debit.Equal(d("11.80")))
	assert.True(t, findLine(t, lines, mappers.CodeSales).Credit.Equal(d("10.00")))
	assert.True(t, findLine(t, lines, mappers.CodeIGV).Credit.Equal(d("1.80")))
}

func TestMapPayment(t *testing.T) {
	t.Run("inbound collects receivable", func(t *testing.T) {
		lines := mappers.MapPayment(domain.PaymentEvent{
			Description: "cobranza",
			Amount:      d("118.00"),
			Direction:   domain.PaymentInbound,
		})
		assertBalanced(t, lines)
		require.Len(t, lines, 2)
		assert.True(t, findLine(t, lines, mappers.CodeCash).Debit.Equal(d("118.00")))
		assert.True(t, findLine(t, lines, mappers.CodeReceivables).Credit.Equal(d("118.00")))
	})

	t.Run("outbound settles payable", func(t *testing.T) {
		lines := mappers.MapPayment(domain.PaymentEvent{
			Description: "pago proveedor",
			Amount:      d("50.00"),
			Direction:   domain.PaymentOutbound,
		})
		assertBalanced(t, lines)
		assert.True(t, findLine(t, lines, mappers.CodePayables).Debit.Equal(d("50.00")))
		assert.True(t, findLine(t, lines, mappers.CodeCash).Credit.Equal(d("50.00")))
	})
}

func TestMapInventoryAdjustment(t *testing.T) {
	t.Run("write-up", func(t *testing.T) {
		lines := mappers.MapInventoryAdjustment(domain.InventoryAdjustmentEvent{
			Description: "sobrante inventario",
			Amount:      d("75.00"),
			Increase:    true,
		})
		assertBalanced(t, lines)
		assert.True(t, findLine(t, lines, mappers.CodeInventory).Debit.Equal(d("75.00")))
	})

	t.Run("write-down", func(t *testing.T) {
		lines := mappers.MapInventoryAdjustment(domain.InventoryAdjustmentEvent{
			Description: "merma",
			Amount:      d("75.00"),
		})
		assertBalanced(t, lines)
		assert.True(t, findLine(t, lines, mappers.CodeCOGS).Debit.Equal(d("75.00")))
		assert.True(t, findLine(t, lines, mappers.CodeInventory).Credit.Equal(d("75.00")))
	})
}
