package main

import (
	"fmt"
	"os"

	"veilon-dashboard-go/internal/accounts"
	"veilon-dashboard-go/internal/catalog"
	"veilon-dashboard-go/internal/checkout"
	"veilon-dashboard-go/internal/config"
	"veilon-dashboard-go/internal/database"
	"veilon-dashboard-go/internal/identity"
	"veilon-dashboard-go/internal/ledger"
	"veilon-dashboard-go/internal/logger"
	"veilon-dashboard-go/internal/payments"
	"veilon-dashboard-go/internal/server"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to the database and seed the plan catalog
	db, err := database.NewDatabase(&cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Core services
	resolver := identity.NewResolver(db, log)
	directory := accounts.NewDirectory(db)
	cat := catalog.NewCatalog(db)
	reader := ledger.NewReader(db)
	workflow := checkout.NewWorkflow(db, cat, log)

	// The provider client is optional; without an API key the coupon
	// cross-checks are skipped.
	var paymentsClient payments.ClientInterface
	if cfg.Payments.APIKey != "" {
		paymentsClient = payments.NewClient(&cfg.Payments, log)
	} else {
		log.Warn("No payments API key configured, provider coupon checks disabled")
	}

	// HTTP API
	e := echo.New()
	e.HideBanner = true

	handler := server.NewHandler(log, resolver, directory, cat, reader, workflow, paymentsClient)
	api := e.Group("/api", server.IdentityMiddleware(cfg.Identity.JWTSecret))
	handler.RegisterRoutes(api)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting dashboard server", zap.String("address", addr))

	if err := e.Start(addr); err != nil {
		log.Fatal("Dashboard server failed", zap.Error(err))
	}
}
