package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/fieldops-monitor/internal/api"
	"github.com/ignite/fieldops-monitor/internal/config"
	"github.com/ignite/fieldops-monitor/internal/engine"
	"github.com/ignite/fieldops-monitor/internal/source"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to configuration file")
	flag.Parse()

	log.Println("FieldOps Monitor — KPI calculation server")

	// Load configuration
	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the data source
	src, closeSource, err := buildSource(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize data source: %v", err)
	}
	defer closeSource()

	// Initialize the calculation engine (loads the KPI catalogue)
	eng, err := engine.New(src)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	server := api.NewServer(cfg, eng)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// buildSource constructs the configured data source and returns a
// cleanup function for whatever it holds open.
func buildSource(cfg *config.Config) (source.DataSource, func(), error) {
	switch cfg.Source.Type {
	case config.SourcePostgres:
		db, err := sql.Open("postgres", cfg.Source.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("database ping: %w", err)
		}
		log.Printf("[source] postgres schema %q, catalogue table %q", cfg.Source.Schema, cfg.Source.CatalogueTable)
		return source.NewPostgres(db, cfg.Source.Schema, cfg.Source.CatalogueTable), func() { db.Close() }, nil

	case config.SourceWorkbook:
		log.Printf("[source] workbook %s", cfg.Source.WorkbookPath)
		if cfg.Source.CatalogueSheet != "" {
			return source.NewWorkbookWithCatalogue(cfg.Source.WorkbookPath, cfg.Source.CatalogueSheet), func() {}, nil
		}
		return source.NewWorkbook(cfg.Source.WorkbookPath), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
}
