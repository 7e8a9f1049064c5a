package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tokopos/checkout-api/internal/application/service"
	"github.com/tokopos/checkout-api/internal/presentation/http/dto/response"
	"github.com/tokopos/checkout-api/pkg/pagination"
)

// SalesHandler handles sales history and invoice playback
type SalesHandler struct {
	salesService   *service.SalesService
	invoiceService *service.InvoiceService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(salesService *service.SalesService, invoiceService *service.InvoiceService) *SalesHandler {
	return &SalesHandler{salesService: salesService, invoiceService: invoiceService}
}

// History lists the cashier's completed sales, paginated
func (h *SalesHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(h.salesService.DefaultPerPage())))

	result, err := h.salesService.History(c.Request.Context(), GetCredential(c), &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Sales history retrieved successfully", result)
}

// Invoice returns a finalized sale with its recomputed discount breakdown
func (h *SalesHandler) Invoice(c *gin.Context) {
	record, err := h.salesService.FindByInvoice(c.Request.Context(), GetCredential(c), c.Param("invoiceNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", h.invoiceService.View(record))
}

// Receipt exports a finalized sale as a fixed-width text receipt
func (h *SalesHandler) Receipt(c *gin.Context) {
	record, err := h.salesService.FindByInvoice(c.Request.Context(), GetCredential(c), c.Param("invoiceNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=invoice_"+record.InvoiceNumber+".txt")
	c.String(200, h.invoiceService.Receipt(record))
}
