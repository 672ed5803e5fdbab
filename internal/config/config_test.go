package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

catalog:
  max_nodes_per_namespace: 5000
  max_projects_per_node: 100

media:
  root_dir: "/tmp/media-test"
  max_size_bytes: 1048576

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Catalog
	if cfg.Catalog.MaxNodesPerNamespace != 5000 {
		t.Errorf("catalog.max_nodes_per_namespace = %d, want 5000", cfg.Catalog.MaxNodesPerNamespace)
	}
	if cfg.Catalog.MaxProjectsPerNode != 100 {
		t.Errorf("catalog.max_projects_per_node = %d, want 100", cfg.Catalog.MaxProjectsPerNode)
	}

	// Media
	if cfg.Media.RootDir != "/tmp/media-test" {
		t.Errorf("media.root_dir = %q", cfg.Media.RootDir)
	}
	if cfg.Media.MaxSizeBytes != 1048576 {
		t.Errorf("media.max_size_bytes = %d, want 1048576", cfg.Media.MaxSizeBytes)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	// Set working dir to a temp dir with no config.yaml
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if !cfg.Database.MigrateOnStart {
		t.Error("database.migrate_on_start should default to true")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_PortOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}

	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port > 65535")
	}
}

func TestValidate_MaxConnsZero(t *testing.T) {
	cfg := validConfig()
	cfg.Database.MaxConns = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for max_conns = 0")
	}
}

func TestValidate_MinConnsAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Database.MinConns = 50
	cfg.Database.MaxConns = 10

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for min_conns > max_conns")
	}
}

func TestValidate_Catalog_MaxNodesZero(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.MaxNodesPerNamespace = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for MaxNodesPerNamespace = 0")
	}
}

func TestValidate_Catalog_MaxProjectsNegative(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.MaxProjectsPerNode = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative MaxProjectsPerNode")
	}
}

func TestValidate_Media_EmptyRootDir(t *testing.T) {
	cfg := validConfig()
	cfg.Media.RootDir = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty media.root_dir")
	}
}

func TestValidate_Media_MaxSizeZero(t *testing.T) {
	cfg := validConfig()
	cfg.Media.MaxSizeBytes = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for media.max_size_bytes = 0")
	}
}

func TestValidate_Log_UnknownFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Format = "xml"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			DSN:      "postgres://u:p@localhost:5432/testdb",
			MaxConns: 25,
			MinConns: 5,
		},
		Catalog: CatalogConfig{
			MaxNodesPerNamespace: 10000,
			MaxProjectsPerNode:   500,
		},
		Media: MediaConfig{
			RootDir:      "./data/media",
			MaxSizeBytes: 10485760,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
