package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	hdto "github.com/kipuerp/ledger_core/internal/handlers/dto"
	"github.com/kipuerp/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// apiTokenHandler handles HTTP requests for API token operations.
type apiTokenHandler struct {
	tokenService portssvc.APITokenSvcFacade
}

func newAPITokenHandler(ts portssvc.APITokenSvcFacade) *apiTokenHandler {
	return &apiTokenHandler{
		tokenService: ts,
	}
}

// registerAPITokenRoutes registers the API token routes.
func registerAPITokenRoutes(rg *gin.RouterGroup, tokenService portssvc.APITokenSvcFacade) {
	h := newAPITokenHandler(tokenService)

	tokens := rg.Group("/tokens")
	{
		tokens.POST("", h.createToken)
		tokens.GET("", h.listTokens)
		tokens.DELETE("/:id", h.revokeToken)
	}
}

// createToken godoc
// @Summary Create an API token
// @Description Mints an organization-scoped token; the plaintext is returned only once
// @Tags tokens
// @Accept  json
// @Produce  json
// @Param   token body dto.CreateAPITokenRequest true "Token details"
// @Success 201 {object} dto.CreateAPITokenResponse
// @Failure 400 {object} dto.APIErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /tokens [post]
func (h *apiTokenHandler) createToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req hdto.CreateAPITokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, hdto.APIErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	tenant, actor, ok := requireCaller(c)
	if !ok {
		return
	}

	var expiresAt *time.Time
	if req.ExpiresIn != nil {
		if *req.ExpiresIn <= 0 {
			c.JSON(http.StatusBadRequest, hdto.APIErrorResponse{Message: "expiresIn must be positive"})
			return
		}
		t := time.Now().UTC().Add(time.Duration(*req.ExpiresIn) * time.Second)
		expiresAt = &t
	}

	token, plaintext, err := h.tokenService.CreateToken(c.Request.Context(), tenant, req.Name, expiresAt, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, hdto.APIErrorResponse{Message: err.Error()})
		} else {
			logger.Error("Failed to create API token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, hdto.APIErrorResponse{Message: "Failed to create API token"})
		}
		return
	}

	logger.Info("API token created", slog.String("token_id", token.ID), slog.String("name", token.Name))
	c.JSON(http.StatusCreated, hdto.CreateAPITokenResponse{
		Token:   plaintext,
		Details: hdto.ToAPITokenResponse(token),
	})
}

// listTokens godoc
// @Summary List API tokens
// @Description Retrieves the organization's active tokens, hashes excluded
// @Tags tokens
// @Produce  json
// @Success 200 {array} dto.APITokenResponse
// @Security BearerAuth
// @Router /tokens [get]
func (h *apiTokenHandler) listTokens(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenant, _, ok := requireCaller(c)
	if !ok {
		return
	}

	tokens, err := h.tokenService.ListTokens(c.Request.Context(), tenant)
	if err != nil {
		logger.Error("Failed to list API tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, hdto.APIErrorResponse{Message: "Failed to list API tokens"})
		return
	}

	c.JSON(http.StatusOK, hdto.ToAPITokenResponses(tokens))
}

// revokeToken godoc
// @Summary Revoke an API token
// @Description Soft-deletes a token; subsequent requests presenting it are rejected
// @Tags tokens
// @Param   id path string true "Token ID"
// @Success 204 "Revoked"
// @Failure 404 {object} dto.APIErrorResponse "Token not found"
// @Security BearerAuth
// @Router /tokens/{id} [delete]
func (h *apiTokenHandler) revokeToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tokenID := c.Param("id")

	tenant, _, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.tokenService.RevokeToken(c.Request.Context(), tenant, tokenID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, hdto.APIErrorResponse{Message: "Token not found"})
		} else {
			logger.Error("Failed to revoke API token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, hdto.APIErrorResponse{Message: "Failed to revoke API token"})
		}
		return
	}

	logger.Info("API token revoked", slog.String("token_id", tokenID))
	c.Status(http.StatusNoContent)
}
