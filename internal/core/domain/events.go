package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentDirection distinguishes collections from disbursements.
type PaymentDirection string

const (
	PaymentInbound  PaymentDirection = "INBOUND"  // Customer pays us
	PaymentOutbound PaymentDirection = "OUTBOUND" // We pay a supplier
)

// SaleEvent is the payload a completed sale hands to the ledger.
// Total is tax-inclusive; Cost is the known product cost for the COGS split.
type SaleEvent struct {
	InvoiceRef   string          `json:"invoiceRef"` // Upstream invoice correlativo
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total"`
	Cost         decimal.Decimal `json:"cost"`
	CashSale     bool            `json:"cashSale"` // Cash vs. receivable
}

// PurchaseEvent is the payload a recorded purchase hands to the ledger.
type PurchaseEvent struct {
	InvoiceRef   string          `json:"invoiceRef"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total"` // Tax-inclusive
	OnCredit     bool            `json:"onCredit"`
}

// PaymentEvent records money moving against an open receivable or payable.
type PaymentEvent struct {
	Ref          string           `json:"ref"`
	Date         time.Time        `json:"date"`
	Description  string           `json:"description"`
	CurrencyCode string           `json:"currencyCode"`
	Amount       decimal.Decimal  `json:"amount"`
	Direction    PaymentDirection `json:"direction"`
}

// CreditNoteEvent reverses revenue for a returned or discounted sale.
type CreditNoteEvent struct {
	NoteRef      string          `json:"noteRef"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total"` // Tax-inclusive
}

// DebitNoteEvent adds charges on top of an existing sale.
type DebitNoteEvent struct {
	NoteRef      string          `json:"noteRef"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total"` // Tax-inclusive
}

// InventoryAdjustmentEvent books a stock write-up or write-down at cost.
type InventoryAdjustmentEvent struct {
	Ref          string          `json:"ref"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`   // Always positive
	Increase     bool            `json:"increase"` // Write-up vs. write-down
}
