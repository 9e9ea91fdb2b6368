package handlers

import (
	"net/http"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requireCaller pulls the authenticated tenant and actor out of the request
// context. It writes a 401 and returns ok=false when authentication did not
// populate them, so handlers can bail out with a bare return.
func requireCaller(c *gin.Context) (domain.TenantContext, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		logger.Error("Tenant context not found in request")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.TenantContext{}, "", false
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in request context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.TenantContext{}, "", false
	}
	return tenant, actor, true
}
