package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"github.com/tokopos/checkout-api/internal/application/service"
	"github.com/tokopos/checkout-api/internal/config"
	"github.com/tokopos/checkout-api/internal/presentation/http/handler"
	"github.com/tokopos/checkout-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session  *handler.SessionHandler
	Catalog  *handler.CatalogHandler
	Customer *handler.CustomerHandler
	Checkout *handler.CheckoutHandler
	Sales    *handler.SalesHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Sessions *service.SessionService
	Cfg      *config.Config
	Logger   *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// All routes carry the opaque backend credential
		v1.Use(middleware.CredentialMiddleware())

		// Session registration needs no session yet
		v1.POST("/sessions", h.Session.Create)

		// Session-bound routes
		bound := v1.Group("")
		bound.Use(middleware.SessionMiddleware(deps.Sessions))

		// Per-session rate limiter
		rateLimiter := middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		bound.Use(rateLimiter.Middleware())

		registerSessionBoundRoutes(bound, h)
	}

	return router
}

func registerSessionBoundRoutes(g *gin.RouterGroup, h *Handlers) {
	g.DELETE("/sessions", h.Session.Delete)

	// Catalog
	g.GET("/catalog", h.Catalog.List)
	g.POST("/catalog/refresh", h.Catalog.Refresh)

	// Customers
	g.GET("/customers", h.Customer.Search)
	g.POST("/customers/refresh", h.Customer.Refresh)

	// Active sale
	g.GET("/checkout", h.Checkout.Get)
	g.DELETE("/checkout", h.Checkout.Clear)
	g.POST("/checkout/items", h.Checkout.AddItem)
	g.PUT("/checkout/items/:productId", h.Checkout.SetQuantity)
	g.DELETE("/checkout/items/:productId", h.Checkout.RemoveItem)
	g.PUT("/checkout/customer", h.Checkout.SelectCustomer)
	g.DELETE("/checkout/customer", h.Checkout.ClearCustomer)
	g.PUT("/checkout/payment", h.Checkout.SetPayment)
	g.POST("/checkout/submit", h.Checkout.Submit)

	// Completed sales
	g.GET("/sales/history", h.Sales.History)
	g.GET("/sales/:invoiceNumber", h.Sales.Invoice)
	g.GET("/sales/:invoiceNumber/receipt", h.Sales.Receipt)
}
