package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"
  timeout_seconds: 45

source:
  type: "workbook"
  workbook_path: "./test-data/maintenance.xlsx"
  catalogue_sheet: "KPI Catalogue"

cors:
  allowed_origins:
    - "https://dashboard.example.com"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Test server config
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 45, cfg.Server.TimeoutSeconds)

	// Test source config
	assert.Equal(t, SourceWorkbook, cfg.Source.Type)
	assert.Equal(t, "./test-data/maintenance.xlsx", cfg.Source.WorkbookPath)
	assert.Equal(t, "KPI Catalogue", cfg.Source.CatalogueSheet)

	// Test CORS config
	assert.Equal(t, []string{"https://dashboard.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadDefaults(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("{}\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Verify defaults are applied
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 60, cfg.Server.TimeoutSeconds)
	assert.Equal(t, SourceWorkbook, cfg.Source.Type)
	assert.Equal(t, "data/maintenance.xlsx", cfg.Source.WorkbookPath)
	assert.Equal(t, "public", cfg.Source.Schema)
	assert.Equal(t, "kpi_catalogue", cfg.Source.CatalogueTable)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadUnknownSourceType(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("source:\n  type: \"sharepoint\"\n"), 0644)
	require.NoError(t, err)

	_, err = Load(configPath)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
source:
  type: "workbook"
  workbook_path: "file-path.xlsx"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	// Set environment variables
	os.Setenv("WORKBOOK_PATH", "env-path.xlsx")
	os.Setenv("CATALOGUE_SHEET", "Catalogue v2")
	defer func() {
		os.Unsetenv("WORKBOOK_PATH")
		os.Unsetenv("CATALOGUE_SHEET")
	}()

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	// Environment variables should override file values
	assert.Equal(t, "env-path.xlsx", cfg.Source.WorkbookPath)
	assert.Equal(t, "Catalogue v2", cfg.Source.CatalogueSheet)
}

func TestLoadFromEnvPostgresRequiresURL(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("source:\n  type: \"postgres\"\n"), 0644)
	require.NoError(t, err)

	_, err = LoadFromEnv(configPath)
	assert.Error(t, err)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestTimeout(t *testing.T) {
	cfg := ServerConfig{TimeoutSeconds: 45}
	assert.Equal(t, 45*1000000000, int(cfg.Timeout().Nanoseconds()))
}
