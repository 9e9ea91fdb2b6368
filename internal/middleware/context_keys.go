package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kipuerp/ledger_core/internal/core/domain"
)

const (
	tenantCtxKey = contextKey("tenant")
	actorCtxKey  = contextKey("actor")
)

// setCallerContext stores the authenticated tenant scope and actor id on the
// request context. Called by the auth middlewares only.
func setCallerContext(c *gin.Context, tenant domain.TenantContext, actor string) {
	ctx := context.WithValue(c.Request.Context(), tenantCtxKey, tenant)
	ctx = context.WithValue(ctx, actorCtxKey, actor)
	c.Request = c.Request.WithContext(ctx)
}

// GetTenantFromContext retrieves the authenticated tenant scope. The boolean
// is false when no auth middleware ran for the request.
func GetTenantFromContext(c *gin.Context) (domain.TenantContext, bool) {
	tenant, ok := c.Request.Context().Value(tenantCtxKey).(domain.TenantContext)
	return tenant, ok
}

// GetActorFromContext retrieves the authenticated actor identifier used for
// audit stamping.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actor, ok := c.Request.Context().Value(actorCtxKey).(string)
	return actor, ok
}
