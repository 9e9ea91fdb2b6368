package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
)

// APITokenAuth authenticates requests carrying an x-api-key header. Upstream
// business modules (sales, purchasing, treasury) use these organization-scoped
// tokens instead of user JWTs. When no key is present the request falls
// through to the JWT middleware.
func APITokenAuth(tokenSvc portssvc.APITokenSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())

		token, err := tokenSvc.ValidateToken(c.Request.Context(), apiKey)
		if err != nil {
			// Invalid key falls through; the JWT middleware rejects the
			// request unless a bearer token authenticates it.
			logger.Warn("API token validation failed", "error", err)
			c.Next()
			return
		}

		setCallerContext(c, token.Tenant(), "token:"+token.Name)
		c.Set("authMethod", "api_token")

		enrichedLogger := logger.With(
			slog.String("token_id", token.ID),
			slog.String("organization_id", token.OrganizationID),
		)
		c.Request = c.Request.WithContext(withLogger(c.Request.Context(), enrichedLogger))

		c.Next()
	}
}
