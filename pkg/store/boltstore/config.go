package boltstore

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"
)

// Config contains bolt database configuration.
type Config struct {
	// Path is the database file. Default: ".data/entities.db"
	Path          string `toml:"path"`
	Timeout       string `toml:"timeout"`
	MaxRecordSize string `toml:"max_record_size"`

	maxRecordSizeVal int64
}

// Env maps environment variable names for bolt configuration.
type Env struct {
	Path          string
	Timeout       string
	MaxRecordSize string
}

// TimeoutDuration parses and returns the file lock timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxRecordSizeBytes returns the validated maximum encoded record size.
func (c *Config) MaxRecordSizeBytes() int64 {
	return c.maxRecordSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the bolt configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxRecordSize != "" {
		c.MaxRecordSize = overlay.MaxRecordSize
	}
}

func (c *Config) loadDefaults() {
	if c.Path == "" {
		c.Path = ".data/entities.db"
	}
	if c.Timeout == "" {
		c.Timeout = "1s"
	}
	if c.MaxRecordSize == "" {
		c.MaxRecordSize = "1MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Path != "" {
		if v := os.Getenv(env.Path); v != "" {
			c.Path = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxRecordSize != "" {
		if v := os.Getenv(env.MaxRecordSize); v != "" {
			c.MaxRecordSize = v
		}
	}
}

func (c *Config) validate() error {
	if c.Path == "" {
		return fmt.Errorf("path required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	size, err := units.FromHumanSize(c.MaxRecordSize)
	if err != nil {
		return fmt.Errorf("invalid max_record_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_record_size must be positive")
	}
	c.maxRecordSizeVal = size

	return nil
}
