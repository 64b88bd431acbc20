package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source types accepted by SourceConfig.Type.
const (
	SourceWorkbook = "workbook"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `yaml:"server"`
	Source SourceConfig `yaml:"source"`
	CORS   CORSConfig   `yaml:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int    `yaml:"port"`
	Host           string `yaml:"host"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return "0.0.0.0"
	}
	// Allow override via environment
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// Timeout returns the configured request timeout as a duration
func (c ServerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SourceConfig selects and configures the KPI data source
type SourceConfig struct {
	Type string `yaml:"type"` // "workbook" or "postgres"

	// Workbook source
	WorkbookPath   string `yaml:"workbook_path"`
	CatalogueSheet string `yaml:"catalogue_sheet"`

	// Postgres source
	DatabaseURL    string `yaml:"database_url"`
	Schema         string `yaml:"schema"`
	CatalogueTable string `yaml:"catalogue_table"`
}

// CORSConfig holds allowed origins for the dashboard frontend
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.TimeoutSeconds == 0 {
		cfg.Server.TimeoutSeconds = 60
	}
	if cfg.Source.Type == "" {
		cfg.Source.Type = SourceWorkbook
	}
	if cfg.Source.WorkbookPath == "" {
		cfg.Source.WorkbookPath = "data/maintenance.xlsx"
	}
	if cfg.Source.Schema == "" {
		cfg.Source.Schema = "public"
	}
	if cfg.Source.CatalogueTable == "" {
		cfg.Source.CatalogueTable = "kpi_catalogue"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}

	if cfg.Source.Type != SourceWorkbook && cfg.Source.Type != SourcePostgres {
		return nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if v := os.Getenv("SOURCE_TYPE"); v != "" {
		cfg.Source.Type = v
	}
	if v := os.Getenv("WORKBOOK_PATH"); v != "" {
		cfg.Source.WorkbookPath = v
	}
	if v := os.Getenv("CATALOGUE_SHEET"); v != "" {
		cfg.Source.CatalogueSheet = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Source.DatabaseURL = v
		if cfg.Source.Type == "" {
			cfg.Source.Type = SourcePostgres
		}
	}
	if v := os.Getenv("DATABASE_SCHEMA"); v != "" {
		cfg.Source.Schema = v
	}

	if cfg.Source.Type == SourcePostgres && cfg.Source.DatabaseURL == "" {
		return nil, fmt.Errorf("source type %q requires database_url", SourcePostgres)
	}

	return cfg, nil
}
