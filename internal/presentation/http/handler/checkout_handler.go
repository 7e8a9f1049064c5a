package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tokopos/checkout-api/internal/application/service"
	"github.com/tokopos/checkout-api/internal/domain/checkout"
	"github.com/tokopos/checkout-api/internal/domain/pricing"
	"github.com/tokopos/checkout-api/internal/presentation/http/dto/request"
	"github.com/tokopos/checkout-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles the active sale: cart mutations, customer
// selection, payment entry, and submission
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	invoiceService  *service.InvoiceService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService, invoiceService *service.InvoiceService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, invoiceService: invoiceService}
}

// checkoutPayload pairs the checkout state with its derived pricing
// snapshot so the screen can rerender both after every mutation.
type checkoutPayload struct {
	State    checkout.State   `json:"state"`
	Snapshot pricing.Snapshot `json:"snapshot"`
}

func (h *CheckoutHandler) respond(c *gin.Context, message string, state checkout.State, snap pricing.Snapshot, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, checkoutPayload{State: state, Snapshot: snap})
}

// Get returns the session's current checkout state and snapshot
func (h *CheckoutHandler) Get(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	state, snap, err := h.checkoutService.State(sessionID)
	h.respond(c, "Checkout state retrieved", state, snap, err)
}

// AddItem adds one unit of a product to the cart
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	state, snap, err := h.checkoutService.AddItem(sessionID, req.ProductID)
	h.respond(c, "Item added", state, snap, err)
}

// SetQuantity sets a cart line's quantity exactly
func (h *CheckoutHandler) SetQuantity(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	state, snap, err := h.checkoutService.SetQuantity(sessionID, c.Param("productId"), req.Quantity)
	h.respond(c, "Quantity updated", state, snap, err)
}

// RemoveItem deletes a product's cart line
func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	state, snap, err := h.checkoutService.RemoveItem(sessionID, c.Param("productId"))
	h.respond(c, "Item removed", state, snap, err)
}

// Clear resets the cart, customer, and payment
func (h *CheckoutHandler) Clear(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	state, snap, err := h.checkoutService.Clear(sessionID)
	h.respond(c, "Checkout cleared", state, snap, err)
}

// SelectCustomer attaches a member to the active sale
func (h *CheckoutHandler) SelectCustomer(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	var req request.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	state, snap, err := h.checkoutService.SelectCustomer(sessionID, req.CustomerID)
	h.respond(c, "Customer selected", state, snap, err)
}

// ClearCustomer detaches the selected customer
func (h *CheckoutHandler) ClearCustomer(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	state, snap, err := h.checkoutService.ClearCustomer(sessionID)
	h.respond(c, "Customer cleared", state, snap, err)
}

// SetPayment records the amount tendered
func (h *CheckoutHandler) SetPayment(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	var req request.SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	state, snap, err := h.checkoutService.SetPayment(sessionID, req.AmountTendered)
	h.respond(c, "Payment updated", state, snap, err)
}

// Submit validates and posts the sale, returning the backend's record
// with the rendered invoice
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID, ok := GetSessionID(c)
	if !ok {
		response.BadRequest(c, "Session header is required")
		return
	}
	record, err := h.checkoutService.Submit(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale recorded successfully", gin.H{
		"sale":    record,
		"invoice": h.invoiceService.View(record),
	})
}
