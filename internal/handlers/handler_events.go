package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/dto"
	"github.com/kipuerp/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventHandler accepts business events from upstream modules and turns them
// into posted journal entries.
type eventHandler struct {
	eventService portssvc.EventSvcFacade
}

func newEventHandler(es portssvc.EventSvcFacade) *eventHandler {
	return &eventHandler{
		eventService: es,
	}
}

// registerEventRoutes registers the event ingestion routes.
func registerEventRoutes(rg *gin.RouterGroup, eventService portssvc.EventSvcFacade) {
	h := newEventHandler(eventService)

	events := rg.Group("/events")
	{
		events.POST("/sale", h.recordSale)
		events.POST("/purchase", h.recordPurchase)
		events.POST("/payment", h.recordPayment)
		events.POST("/credit-note", h.recordCreditNote)
		events.POST("/debit-note", h.recordDebitNote)
		events.POST("/inventory-adjustment", h.recordInventoryAdjustment)
	}
}

// recordSale godoc
// @Summary Record a sale
// @Description Maps a completed sale into a posted entry with the tax-inclusive revenue split; idempotent on invoiceRef
// @Tags events
// @Accept  json
// @Produce  json
// @Param   event body dto.SaleEventRequest true "Sale event"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 423 {object} map[string]string "Period is locked"
// @Security BearerAuth
// @Router /events/sale [post]
func (h *eventHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaleEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	entry, err := h.eventService.RecordSale(c.Request.Context(), tenant, req.ToDomainSaleEvent(), actor)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to record sale")
		return
	}

	logger.Info("Sale recorded", slog.String("entry_id", entry.EntryID), slog.String("invoice_ref", req.InvoiceRef))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordPurchase godoc
// @Summary Record a purchase
// @Description Maps a supplier invoice into a posted entry with the tax credit split; idempotent on invoiceRef
// @Tags events
// @Accept  json
// @Produce  json
// @Param   event body dto.PurchaseEventRequest true "Purchase event"
// @Success 201 {object} dto.EntryResponse
// @Security BearerAuth
// @Router /events/purchase [post]
func (h *eventHandler) recordPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PurchaseEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	entry, err := h.eventService.RecordPurchase(c.Request.Context(), tenant, req.ToDomainPurchaseEvent(), actor)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to record purchase")
		return
	}

	logger.Info("Purchase recorded", slog.String("entry_id", entry.EntryID), slog.String("invoice_ref", req.InvoiceRef))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Maps a collection or disbursement into a posted entry; idempotent on ref
// @Tags events
// @Accept  json
// @Produce  json
// @Param   event body dto.PaymentEventRequest true "Payment event"
// @Success 201 {object} dto.EntryResponse
// @Security BearerAuth
// @Router /events/payment [post]
func (h *eventHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PaymentEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	entry, err := h.eventService.RecordPayment(c.Request.Context(), tenant, req.ToDomainPaymentEvent(), actor)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("entry_id", entry.EntryID), slog.String("ref", req.Ref))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordCreditNote godoc
// @Summary Record a credit note
// @Description Maps a credit note into a posted entry reversing revenue and tax; idempotent on noteRef
// @Tags events
// @Accept  json
// @Produce  json
// @Param   event body dto.NoteEventRequest true "Credit note event"
// @Success 201 {object} dto.EntryResponse
// @Security BearerAuth
// @Router /events/credit-note [post]
func (h *eventHandler) recordCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.NoteEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordCreditNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	entry, err := h.eventService.RecordCreditNote(c.Request.Context(), tenant, req.ToDomainCreditNoteEvent(), actor)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to record credit note")
		return
	}

	logger.Info("Credit note recorded", slog.String("entry_id", entry.EntryID), slog.String("note_ref", req.NoteRef))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordDebitNote godoc
// @Summary Record a debit note
// @Description Maps a debit note into a posted entry adding charges over a sale; idempotent on noteRef
// @Tags events
// @Accept  json
// @Produce  json
// @Param   event body dto.NoteEventRequest true "Debit note event"
// @Success 201 {object} dto.EntryResponse
// @Security BearerAuth
// @Router /events/debit-note [post]
func (h *eventHandler) recordDebitNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.NoteEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordDebitNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	entry, err := h.eventService.RecordDebitNote(c.Request.Context(), tenant, req.ToDomainDebitNoteEvent(), actor)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to record debit note")
		return
	}

	logger.Info("Debit note recorded", slog.String("entry_id", entry.EntryID), slog.String("note_ref", req.NoteRef))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordInventoryAdjustment godoc
// @Summary Record an inventory adjustment
// @Description Maps a stock write-up or write-down into a posted entry; idempotent on ref
// @Tags events
// @Accept  json
// @Produce  json
// @Param   event body dto.InventoryAdjustmentRequest true "Adjustment event"
// @Success 201 {object} dto.EntryResponse
// @Security BearerAuth
// @Router /events/inventory-adjustment [post]
func (h *eventHandler) recordInventoryAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InventoryAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordInventoryAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	entry, err := h.eventService.RecordInventoryAdjustment(c.Request.Context(), tenant, req.ToDomainInventoryAdjustmentEvent(), actor)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to record inventory adjustment")
		return
	}

	logger.Info("Inventory adjustment recorded", slog.String("entry_id", entry.EntryID), slog.String("ref", req.Ref))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
