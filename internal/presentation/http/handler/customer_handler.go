package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tokopos/checkout-api/internal/application/service"
	"github.com/tokopos/checkout-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles member lookups for the checkout screen
type CustomerHandler struct {
	customers *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Search returns members matching the term by name or member code
func (h *CustomerHandler) Search(c *gin.Context) {
	matches := h.customers.Search(c.Query("search"))
	response.OK(c, "Members retrieved successfully", matches)
}

// Refresh re-fetches the customer roster from the backend
func (h *CustomerHandler) Refresh(c *gin.Context) {
	if err := h.customers.Refresh(c.Request.Context(), GetCredential(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer roster refreshed", nil)
}
