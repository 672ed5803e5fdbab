package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in 0..max_conns (got %d)", c.Database.MinConns)
	}

	if c.Catalog.MaxNodesPerNamespace <= 0 {
		return fmt.Errorf("catalog.max_nodes_per_namespace must be > 0 (got %d)", c.Catalog.MaxNodesPerNamespace)
	}
	if c.Catalog.MaxProjectsPerNode <= 0 {
		return fmt.Errorf("catalog.max_projects_per_node must be > 0 (got %d)", c.Catalog.MaxProjectsPerNode)
	}

	if c.Media.RootDir == "" {
		return fmt.Errorf("media.root_dir must not be empty")
	}
	if c.Media.MaxSizeBytes <= 0 {
		return fmt.Errorf("media.max_size_bytes must be > 0 (got %d)", c.Media.MaxSizeBytes)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}
