/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Tally hours-engine server. Handles
  configuration, dependency wiring, snapshot restore, and graceful
  shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags (optionally a YAML config file)
  2. Open the SQLite snapshot store
  3. Build the ledger for the tracked year and restore the snapshot
  4. Wire tracker, export service, handler, router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config      YAML config file path (optional)
  -port        HTTP server port (default: 8080)
  -db          SQLite database path (default: tally.db)
               Use ":memory:" for an in-memory database
  -export-dir  Directory for export artifacts (default: exports)
  -year        Tracked calendar year (default: 2025)

  Flags set explicitly on the command line override the config file.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, close the database.

SEE ALSO:
  - config/config.go: YAML configuration
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Snapshot persistence
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tally/hours-engine/api"
	"github.com/tally/hours-engine/config"
	"github.com/tally/hours-engine/export"
	"github.com/tally/hours-engine/ledger"
	"github.com/tally/hours-engine/store/sqlite"
	"github.com/tally/hours-engine/tracker"
)

func main() {
	configPath := flag.String("config", "", "YAML config file path")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	exportDir := flag.String("export-dir", "", "export artifact directory (overrides config)")
	year := flag.Int("year", 0, "tracked calendar year (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *exportDir != "" {
		cfg.Export.Dir = *exportDir
	}
	if *year != 0 {
		cfg.Tracking.Year = *year
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Snapshot store
	st, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	// Ledger + tracker, restored from the last snapshot
	l := ledger.New(ledger.YearWindow(cfg.Tracking.Year))
	tr := tracker.New(l, st)
	if skipped, err := tr.Restore(context.Background()); err != nil {
		log.Printf("Warning: %v", err)
	} else if skipped > 0 {
		log.Printf("Warning: dropped %d invalid snapshot entries", skipped)
	}

	tr.Subscribe(func(ev tracker.Event) {
		log.Printf("ledger %s %s", ev.Op, ev.Date)
	})

	exporter := export.New(tr, cfg.Export.Dir)
	handler := api.NewHandler(tr, exporter)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Tally server starting on http://localhost:%d (tracking %d)", cfg.Server.Port, cfg.Tracking.Year)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
