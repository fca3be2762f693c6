package middleware

import (
	"net/http"
	"strings"

	"roomledger/internal/pkg/jwt"
	"roomledger/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token and puts the caller's identity into
// the gin context (user_id, role, ledger_address).
//
// Browsers cannot set headers on WebSocket dials, so a token passed as the
// "token" query parameter is accepted as a fallback.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
				c.Abort()
				return
			}
			tokenStr = parts[1]
		} else {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("ledger_address", claims.LedgerAddress)
		c.Next()
	}
}
