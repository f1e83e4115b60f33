package main

//
//  @title           negspulse API
//  @version         1.0
//  @description     B3/Sinacor NEGS trade file decoding, ingestion & aggregation service.
//  @termsOfService  https://github.com/guttosm/negspulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/negspulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        aggregate
//  @tag.description Endpoints for querying ticker aggregates
//
//  @tag.name        negs
//  @tag.description NEGS file decoding and ingested documents
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/negspulse/config"
	_ "github.com/guttosm/negspulse/docs" // swagger docs
	"github.com/guttosm/negspulse/internal/app"
	"github.com/guttosm/negspulse/internal/exporter"
	"github.com/guttosm/negspulse/internal/ingestion"
	"github.com/guttosm/negspulse/internal/logger"
	"github.com/guttosm/negspulse/internal/negs"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runIngest connects to PostgreSQL, applies pending migrations and ingests dir.
func runIngest(ctx context.Context, dir string, opts ingestion.Options) (ingestion.Summary, error) {
	db, err := app.InitPostgres(config.AppConfig)
	if err != nil {
		return ingestion.Summary{}, fmt.Errorf("db connect: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := app.RunMigrations(db); err != nil {
		return ingestion.Summary{}, fmt.Errorf("migrations: %w", err)
	}
	return ingestion.ProcessDirectory(ctx, dir, db, opts)
}

// exportFile decodes the NEGS file at path and writes it to outDir in format.
// Outputs are named after the input file without its extension.
func exportFile(path, outDir, format string) ([]string, error) {
	doc, err := negs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return exporter.Export(format, outDir, base, doc)
}

// main is the entry point of the negspulse application.
//
// Modes (selected via --mode flag):
//   - ingest: Decodes NEGS .txt files from --dir and stores the sessions of the last N business days.
//   - api:    Starts the REST API (aggregates, NEGS decoding, ingested files).
//   - export: Decodes a single NEGS file (--file) into CSV or XLSX under --out.
//
// Flags:
//   - --mode:     Execution mode ("ingest", "api" or "export"). Default: "ingest".
//   - --dir:      Directory containing .txt input files. Defaults to NEGS_INPUT_DIR.
//   - --days:     Business-day window; 0 ingests every session. Defaults to NEGS_WINDOW_DAYS.
//   - --parallel: Files processed concurrently (0=auto, max 7). Defaults to NEGS_PARALLEL.
//   - --force:    Replace sessions already ingested.
//   - --port:     Port for the API server. Defaults to SERVER_PORT.
//   - --file:     NEGS file for export mode.
//   - --out:      Output directory for export mode. Defaults to EXPORT_DIR.
//   - --format:   "csv" or "xlsx". Defaults to EXPORT_FORMAT.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "ingest", "Mode: ingest, api or export")
	dir := flag.String("dir", config.AppConfig.Ingestion.InputDir, "Directory with NEGS .txt files")
	days := flag.Int("days", config.AppConfig.Ingestion.WindowDays, "Number of last business days to ingest (0 = all)")
	parallel := flag.Int("parallel", config.AppConfig.Ingestion.Parallel, "How many files to process concurrently (0=auto up to CPU, max 7)")
	force := flag.Bool("force", false, "Reprocess sessions even if already ingested (deletes the stored document first)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	file := flag.String("file", "", "NEGS .txt file to export")
	out := flag.String("out", config.AppConfig.Export.Dir, "Output directory for export mode")
	format := flag.String("format", config.AppConfig.Export.Format, "Export format: csv or xlsx")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Msg("running ingestion")
		if *days < 0 {
			*days = 0
		}

		sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		summary, err := runIngest(sigCtx, *dir, ingestion.Options{
			WindowDays: *days,
			Parallel:   *parallel,
			BatchSize:  config.AppConfig.Ingestion.BatchSize,
			Force:      *force,
		})
		if err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Int("files", summary.Files).Int("ingested", summary.Ingested).
			Int("replaced", summary.Replaced).Int("skipped", summary.Skipped).
			Int("out_of_window", summary.OutOfWindow).Int("trades", summary.Trades).
			Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "export":
		if *file == "" {
			logger.L().Fatal().Msg("--file is required in export mode")
		}
		paths, err := exportFile(*file, *out, *format)
		if err != nil {
			logger.L().Fatal().Err(err).Str("file", *file).Msg("export failed")
		}
		logger.L().Info().Strs("outputs", paths).Str("format", *format).Msg("export completed")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
