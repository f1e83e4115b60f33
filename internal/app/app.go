package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/negspulse/config"
	"github.com/guttosm/negspulse/internal/api"
	"github.com/guttosm/negspulse/internal/service"
	"github.com/guttosm/negspulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres() and applies migrations.
//   - Initializes the repository layer (NegsRepository).
//   - Creates the service and HTTP handler layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	if err := migrator(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate: %w", err)
	}

	repo := storage.NewNegsRepository(db)

	aggregates := service.NewAggregateService(repo)
	documents := service.NewDocumentService(repo)

	handler := api.NewHandler(aggregates, documents, cfg.Server.UploadMaxBytes)
	router := api.NewRouter(handler, cfg.Server)

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
