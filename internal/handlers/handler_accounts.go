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

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	chartService  portssvc.ChartSvcFacade
	ledgerService portssvc.LedgerReaderSvc
}

func newAccountHandler(cs portssvc.ChartSvcFacade, ls portssvc.LedgerReaderSvc) *accountHandler {
	return &accountHandler{
		chartService:  cs,
		ledgerService: ls,
	}
}

// registerAccountRoutes registers routes related to the chart of accounts.
func registerAccountRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade, ledgerService portssvc.LedgerReaderSvc) {
	h := newAccountHandler(chartService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.POST("/bootstrap", h.bootstrapChart)
		accounts.GET("/:accountID", h.getAccountByID)
		accounts.GET("/:accountID/lines", h.listAccountLines)
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Adds an account to the organization's chart, optionally under a parent code
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	account, err := h.chartService.CreateAccount(c.Request.Context(), tenant, req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate account", slog.String("code", req.Code))
			c.JSON(http.StatusConflict, gin.H{"error": "Account code '" + req.Code + "' already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves the organization's chart of accounts ordered by code
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Max accounts to return" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenant, _, ok := requireCaller(c)
	if !ok {
		return
	}

	accounts, err := h.chartService.ListAccounts(c.Request.Context(), tenant, params)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// bootstrapChart godoc
// @Summary Bootstrap the default chart
// @Description Idempotently seeds the default journal book and the minimal PCGE chart for the organization
// @Tags accounts
// @Success 204 "Chart present"
// @Security BearerAuth
// @Router /accounts/bootstrap [post]
func (h *accountHandler) bootstrapChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.chartService.EnsureDefaults(c.Request.Context(), tenant, actor); err != nil {
		logger.Error("Failed to bootstrap chart", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bootstrap chart"})
		return
	}

	logger.Info("Default chart ensured", slog.String("organization_id", tenant.OrganizationID))
	c.Status(http.StatusNoContent)
}

// getAccountByID godoc
// @Summary Get an account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccountByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	tenant, _, ok := requireCaller(c)
	if !ok {
		return
	}

	account, err := h.chartService.GetAccountByID(c.Request.Context(), tenant, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccountLines godoc
// @Summary List an account's activity
// @Description Retrieves one page of entry lines posted to the account, newest entry first
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   page query int false "Page number" default(1)
// @Param   size query int false "Page size" default(20)
// @Success 200 {object} dto.ListLinesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/lines [get]
func (h *accountHandler) listAccountLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ListLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAccountLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenant, _, ok := requireCaller(c)
	if !ok {
		return
	}

	resp, err := h.ledgerService.ListLinesByAccount(c.Request.Context(), tenant, accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list account lines", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list account lines"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
