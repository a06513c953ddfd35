package config

import (
	"fmt"
	"strings"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

type StorageConfig struct {
	Driver  string `koanf:"driver"`
	Migrate bool   `koanf:"migrate"`
	SQLite  struct {
		Path string `koanf:"path"`
	} `koanf:"sqlite"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	b.WriteString(fmt.Sprintf("  migrate: %t\n", c.Migrate))
	if c.Driver == StorageDriverSQLite {
		b.WriteString(fmt.Sprintf("  sqlite.path: %s\n", c.SQLite.Path))
	}
	return b.String()
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
		return nil
	case StorageDriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite storage is selected but path is not configured")
		}
		return nil
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.Driver)
	}
}
