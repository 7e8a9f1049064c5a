package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tokopos/checkout-api/internal/presentation/http/dto/response"
)

// CredentialKey is the context key holding the raw bearer credential.
const CredentialKey = "credential"

// CredentialMiddleware extracts the bearer credential from the
// Authorization header. The credential is opaque to the gateway: it is
// never parsed or validated here, only carried along so backend calls can
// forward it. The backend is the authority on whether it is valid.
func CredentialMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		c.Set(CredentialKey, parts[1])
		c.Next()
	}
}
