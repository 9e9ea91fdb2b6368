package dto

import (
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleEventRequest is the payload the sales module posts for a completed sale.
type SaleEventRequest struct {
	InvoiceRef   string          `json:"invoiceRef" binding:"required"`
	Date         time.Time       `json:"date" binding:"required"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total" binding:"required"`
	Cost         decimal.Decimal `json:"cost"`
	CashSale     bool            `json:"cashSale"`
}

// ToDomainSaleEvent converts the request to its domain event.
func (r SaleEventRequest) ToDomainSaleEvent() domain.SaleEvent {
	return domain.SaleEvent{
		InvoiceRef:   r.InvoiceRef,
		Date:         r.Date,
		Description:  r.Description,
		CurrencyCode: r.CurrencyCode,
		Total:        r.Total,
		Cost:         r.Cost,
		CashSale:     r.CashSale,
	}
}

// PurchaseEventRequest is the payload the purchasing module posts.
type PurchaseEventRequest struct {
	InvoiceRef   string          `json:"invoiceRef" binding:"required"`
	Date         time.Time       `json:"date" binding:"required"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total" binding:"required"`
	OnCredit     bool            `json:"onCredit"`
}

// ToDomainPurchaseEvent converts the request to its domain event.
func (r PurchaseEventRequest) ToDomainPurchaseEvent() domain.PurchaseEvent {
	return domain.PurchaseEvent{
		InvoiceRef:   r.InvoiceRef,
		Date:         r.Date,
		Description:  r.Description,
		CurrencyCode: r.CurrencyCode,
		Total:        r.Total,
		OnCredit:     r.OnCredit,
	}
}

// PaymentEventRequest is the payload the treasury module posts.
type PaymentEventRequest struct {
	Ref          string                  `json:"ref" binding:"required"`
	Date         time.Time               `json:"date" binding:"required"`
	Description  string                  `json:"description"`
	CurrencyCode string                  `json:"currencyCode"`
	Amount       decimal.Decimal         `json:"amount" binding:"required"`
	Direction    domain.PaymentDirection `json:"direction" binding:"required,oneof=INBOUND OUTBOUND"`
}

// ToDomainPaymentEvent converts the request to its domain event.
func (r PaymentEventRequest) ToDomainPaymentEvent() domain.PaymentEvent {
	return domain.PaymentEvent{
		Ref:          r.Ref,
		Date:         r.Date,
		Description:  r.Description,
		CurrencyCode: r.CurrencyCode,
		Amount:       r.Amount,
		Direction:    r.Direction,
	}
}

// NoteEventRequest is the shared payload for credit and debit notes.
type NoteEventRequest struct {
	NoteRef      string          `json:"noteRef" binding:"required"`
	Date         time.Time       `json:"date" binding:"required"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total" binding:"required"`
}

// ToDomainCreditNoteEvent converts the request to its domain event.
func (r NoteEventRequest) ToDomainCreditNoteEvent() domain.CreditNoteEvent {
	return domain.CreditNoteEvent{
		NoteRef:      r.NoteRef,
		Date:         r.Date,
		Description:  r.Description,
		CurrencyCode: r.CurrencyCode,
		Total:        r.Total,
	}
}

// ToDomainDebitNoteEvent converts the request to its domain event.
func (r NoteEventRequest) ToDomainDebitNoteEvent() domain.DebitNoteEvent {
	return domain.DebitNoteEvent{
		NoteRef:      r.NoteRef,
		Date:         r.Date,
		Description:  r.Description,
		CurrencyCode: r.CurrencyCode,
		Total:        r.Total,
	}
}

// InventoryAdjustmentRequest is the payload the inventory module posts for a
// stock write-up or write-down.
type InventoryAdjustmentRequest struct {
	Ref          string          `json:"ref" binding:"required"`
	Date         time.Time       `json:"date" binding:"required"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Increase     bool            `json:"increase"`
}

// ToDomainInventoryAdjustmentEvent converts the request to its domain event.
func (r InventoryAdjustmentRequest) ToDomainInventoryAdjustmentEvent() domain.InventoryAdjustmentEvent {
	return domain.InventoryAdjustmentEvent{
		Ref:          r.Ref,
		Date:         r.Date,
		Description:  r.Description,
		CurrencyCode: r.CurrencyCode,
		Amount:       r.Amount,
		Increase:     r.Increase,
	}
}
