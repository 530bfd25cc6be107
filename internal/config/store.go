package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/entity-handlers/pkg/store/boltstore"
)

// Backend names a repository implementation.
type Backend string

// Supported backends.
const (
	BackendMemory   Backend = "memory"
	BackendBolt     Backend = "bolt"
	BackendPostgres Backend = "postgres"
)

// EnvStoreBackend overrides the store backend.
const EnvStoreBackend = "STORE_BACKEND"

var boltEnv = &boltstore.Env{
	Path:          "STORE_BOLT_PATH",
	Timeout:       "STORE_BOLT_TIMEOUT",
	MaxRecordSize: "STORE_BOLT_MAX_RECORD_SIZE",
}

// StoreConfig selects the repository backend.
type StoreConfig struct {
	Backend Backend          `toml:"backend"`
	Bolt    boltstore.Config `toml:"bolt"`
}

// Finalize applies defaults, loads environment overrides, and validates the store configuration.
func (c *StoreConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	if err := c.validate(); err != nil {
		return err
	}
	if c.Backend == BackendBolt {
		if err := c.Bolt.Finalize(boltEnv); err != nil {
			return fmt.Errorf("bolt: %w", err)
		}
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StoreConfig) Merge(overlay *StoreConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	c.Bolt.Merge(&overlay.Bolt)
}

func (c *StoreConfig) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
}

func (c *StoreConfig) loadEnv() {
	if v := os.Getenv(EnvStoreBackend); v != "" {
		c.Backend = Backend(v)
	}
}

func (c *StoreConfig) validate() error {
	switch c.Backend {
	case BackendMemory, BackendBolt, BackendPostgres:
		return nil
	default:
		return fmt.Errorf("invalid backend: %s (must be memory, bolt, or postgres)", c.Backend)
	}
}
