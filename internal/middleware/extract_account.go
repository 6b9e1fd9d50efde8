package middleware

import (
	"net/http"

	"transparency/internal/shared/contextutil"
	"transparency/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ExtractAccountID re-checks the account_id left by AuthMiddleware and stores
// it under a typed key so downstream handlers can read it without asserting.
func ExtractAccountID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		accountID, exists := ctx.Get("account_id")
		if !exists {
			response.Error(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "Account is not authenticated", nil)
			ctx.Abort()
			return
		}

		accountIDStr, ok := accountID.(string)
		if !ok || accountIDStr == "" {
			response.Error(ctx, http.StatusUnauthorized, "INVALID_ACCOUNT_ID", "Malformed account_id claim", nil)
			ctx.Abort()
			return
		}

		ctx.Set("account_id_validated", accountIDStr)

		// Propagate into the standard context for services and the outbox.
		reqCtx := contextutil.WithAccountID(ctx.Request.Context(), accountIDStr)
		ctx.Request = ctx.Request.WithContext(reqCtx)

		ctx.Next()
	}
}
