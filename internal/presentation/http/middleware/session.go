package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tokopos/checkout-api/internal/application/service"
	"github.com/tokopos/checkout-api/internal/presentation/http/dto/response"
)

const (
	// SessionHeader carries the checkout session ID on every request
	// after registration.
	SessionHeader = "X-Session-ID"
	// SessionIDKey is the context key holding the parsed session ID.
	SessionIDKey = "session_id"
)

// SessionMiddleware resolves the checkout session named by the session
// header and rejects requests for unknown or expired sessions.
func SessionMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SessionHeader)
		if raw == "" {
			response.BadRequest(c, "Session header is required")
			c.Abort()
			return
		}

		sessionID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid session ID")
			c.Abort()
			return
		}

		if _, err := sessions.Get(sessionID); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}
