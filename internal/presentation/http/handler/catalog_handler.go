package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tokopos/checkout-api/internal/application/service"
	"github.com/tokopos/checkout-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles catalog browsing for the checkout screen
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns cached catalog items, optionally filtered by name
func (h *CatalogHandler) List(c *gin.Context) {
	items := h.catalog.Search(c.Query("search"))
	response.OK(c, "Catalog retrieved successfully", items)
}

// Refresh re-fetches the catalog wholesale from the backend
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context(), GetCredential(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog refreshed", h.catalog.Search(""))
}
