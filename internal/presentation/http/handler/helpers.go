package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tokopos/checkout-api/internal/presentation/http/middleware"
)

// GetCredential extracts the opaque backend credential from the Gin context
func GetCredential(c *gin.Context) string {
	credential, exists := c.Get(middleware.CredentialKey)
	if !exists {
		return ""
	}
	s, ok := credential.(string)
	if !ok {
		return ""
	}
	return s
}

// GetSessionID extracts the checkout session ID from the Gin context
func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionIDVal, exists := c.Get(middleware.SessionIDKey)
	if !exists {
		return uuid.Nil, false
	}
	sessionID, ok := sessionIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return sessionID, true
}
