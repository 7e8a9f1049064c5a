package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"github.com/tokopos/checkout-api/internal/application/service"
	"github.com/tokopos/checkout-api/internal/config"
	"github.com/tokopos/checkout-api/internal/infrastructure/backend"
	"github.com/tokopos/checkout-api/internal/presentation/http/handler"
	"github.com/tokopos/checkout-api/internal/presentation/http/routes"
)

// receiptWidth is the character width of rendered text receipts,
// sized for 58mm thermal printers.
const receiptWidth = 40

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Backend client: the gateway owns no data of its own, everything
	// authoritative lives behind this client.
	backendClient := backend.NewClient(&cfg.Backend, logger)

	// Services
	sessionService := service.NewSessionService(&cfg.Session, logger)
	catalogService := service.NewCatalogService(backendClient)
	customerService := service.NewCustomerService(backendClient)
	checkoutService := service.NewCheckoutService(sessionService, catalogService, customerService, backendClient, logger)
	salesService := service.NewSalesService(backendClient, cfg.History.PerPage)
	invoiceService := service.NewInvoiceService(receiptWidth)

	// Handlers
	handlers := &routes.Handlers{
		Session:  handler.NewSessionHandler(sessionService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Customer: handler.NewCustomerHandler(customerService),
		Checkout: handler.NewCheckoutHandler(checkoutService, invoiceService),
		Sales:    handler.NewSalesHandler(salesService, invoiceService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Sessions: sessionService,
		Cfg:      cfg,
		Logger:   logger,
	})

	logger.Info("Starting checkout gateway",
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
