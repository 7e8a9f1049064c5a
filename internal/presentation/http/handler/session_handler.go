package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tokopos/checkout-api/internal/application/service"
	"github.com/tokopos/checkout-api/internal/presentation/http/dto/request"
	"github.com/tokopos/checkout-api/internal/presentation/http/dto/response"
)

// SessionHandler handles checkout session registration
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create registers a checkout session bound to the caller's credential
func (h *SessionHandler) Create(c *gin.Context) {
	var req request.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body")
		return
	}
	role := req.Role
	if role == "" {
		role = "cashier"
	}

	sess := h.sessions.Create(GetCredential(c), role)
	response.Created(c, "Checkout session created", gin.H{
		"sessionId": sess.ID,
		"role":      sess.Role,
	})
}

// Delete ends a checkout session
func (h *SessionHandler) Delete(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	h.sessions.Delete(sessionID)
	response.NoContent(c)
}
