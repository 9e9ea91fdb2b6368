package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/dto"
	"github.com/kipuerp/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{
		periodService: ps,
	}
}

// registerPeriodRoutes registers routes related to accounting periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("/resolve", h.resolvePeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriodByID)
		periods.POST("/:periodID/lock", h.lockPeriod)
	}
}

// resolvePeriod godoc
// @Summary Resolve the period for a date
// @Description Finds the calendar-month period covering the date, creating it OPEN when absent
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   request body dto.ResolvePeriodRequest true "Date to resolve"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /periods/resolve [post]
func (h *periodHandler) resolvePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResolvePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResolvePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	period, err := h.periodService.ResolvePeriod(c.Request.Context(), tenant, req.Date, actor)
	if err != nil {
		logger.Error("Failed to resolve period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List periods
// @Description Retrieves the organization's accounting periods, newest first
// @Tags periods
// @Produce  json
// @Success 200 {array} dto.PeriodResponse
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenant, _, ok := requireCaller(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), tenant)
	if err != nil {
		logger.Error("Failed to list periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getPeriodByID godoc
// @Summary Get a period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /periods/{periodID} [get]
func (h *periodHandler) getPeriodByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	tenant, _, ok := requireCaller(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), tenant, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to get period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// lockPeriod godoc
// @Summary Lock a period
// @Description One-way administrative lock; locked periods reject new postings permanently
// @Tags periods
// @Param   periodID path string true "Period ID"
// @Success 204 "Period locked"
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /periods/{periodID}/lock [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.periodService.LockPeriod(c.Request.Context(), tenant, periodID, actor); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to lock period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock period"})
		}
		return
	}

	logger.Info("Period locked", slog.String("period_id", periodID))
	c.Status(http.StatusNoContent)
}
