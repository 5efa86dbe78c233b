package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bondpulse/config"
	"github.com/guttosm/bondpulse/internal/api"
	"github.com/guttosm/bondpulse/internal/service"
	"github.com/guttosm/bondpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the query executor the configuration selects (direct
//     PostgreSQL or the remote query API).
//   - Creates the analytics service and request dispatcher.
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	var (
		exec        storage.Executor
		backendPing func() error
		cleanup     = func() {}
	)

	switch cfg.Query.Backend {
	case config.BackendRemote:
		exec = storage.NewRemoteExecutor(cfg.Query.BaseURL, cfg.Query.AppID, cfg.Query.APIKey)
	default:
		// Connect to PostgreSQL
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		pg := storage.NewPostgresExecutor(db)
		exec = pg
		backendPing = pg.Ping
		cleanup = func() { _ = pg.Close() }
	}

	// Initialize the analytics service (business logic)
	svc := service.NewAnalyticsService(exec, service.Options{
		ClientID:        cfg.Analytics.ClientID,
		MarketLagDays:   cfg.Analytics.MarketLagDays,
		MinContributors: cfg.Analytics.MinContributors,
	})

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, service.NewDispatcher(), cfg.Analytics.MinContributors)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(backendPing)
	healthHandler.Register(router)

	return router, cleanup, nil
}
