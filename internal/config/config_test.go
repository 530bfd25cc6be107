package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/entity-handlers/internal/config"
	"github.com/JaimeStill/entity-handlers/pkg/logging"
)

const baseConfig = `
[store]
backend = "bolt"

[store.bolt]
path = "members.db"

[logging]
level = "warn"

[pagination]
default_page_size = 10
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_BaseOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.BackendBolt, cfg.Store.Backend)
	assert.Equal(t, "members.db", cfg.Store.Bolt.Path)
	assert.Equal(t, logging.LevelWarn, cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Pagination.DefaultPageSize)
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", `
[logging]
format = "json"

[pagination]
default_page_size = 25
`)
	t.Setenv(config.EnvServiceEnv, "staging")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.BackendBolt, cfg.Store.Backend)
	assert.Equal(t, logging.LevelWarn, cfg.Logging.Level)
	assert.Equal(t, logging.FormatJSON, cfg.Logging.Format)
	assert.Equal(t, 25, cfg.Pagination.DefaultPageSize)
}

func TestLoad_MissingOverlayIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	t.Setenv(config.EnvServiceEnv, "production")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Pagination.DefaultPageSize)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), config.BaseConfigFile, "[store\nbackend = ")
		_, err := config.Load(path)
		assert.Error(t, err)
	})
}

func TestConfig_Finalize_Defaults(t *testing.T) {
	var cfg config.Config
	require.NoError(t, cfg.Finalize())

	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, logging.LevelInfo, cfg.Logging.Level)
	assert.Equal(t, logging.FormatText, cfg.Logging.Format)
	assert.Equal(t, 20, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)

	// Database settings are left alone unless postgres is selected.
	assert.Empty(t, cfg.Database.Host)
	assert.Empty(t, cfg.Store.Bolt.Path)
}

func TestConfig_Finalize_Bolt(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Backend: config.BackendBolt}}
	require.NoError(t, cfg.Finalize())

	assert.Equal(t, ".data/entities.db", cfg.Store.Bolt.Path)
	assert.Equal(t, int64(1000000), cfg.Store.Bolt.MaxRecordSizeBytes())
}

func TestConfig_Finalize_Postgres(t *testing.T) {
	t.Run("requires database settings", func(t *testing.T) {
		cfg := config.Config{Store: config.StoreConfig{Backend: config.BackendPostgres}}
		err := cfg.Finalize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database:")
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv(config.EnvStoreBackend, "postgres")
		t.Setenv("DATABASE_NAME", "entities")
		t.Setenv("DATABASE_USER", "app")
		t.Setenv("DATABASE_SCHEMA", "tenant")

		var cfg config.Config
		require.NoError(t, cfg.Finalize())

		assert.Equal(t, config.BackendPostgres, cfg.Store.Backend)
		assert.Equal(t, "entities", cfg.Database.Name)
		assert.Equal(t, "app", cfg.Database.User)
		assert.Equal(t, "tenant", cfg.Database.Schema)
		assert.Equal(t, "localhost", cfg.Database.Host)
	})
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvStoreBackend, "bolt")
	t.Setenv("STORE_BOLT_PATH", "/tmp/override.db")
	t.Setenv("STORE_BOLT_MAX_RECORD_SIZE", "4KB")
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv("PAGINATION_MAX_PAGE_SIZE", "50")

	var cfg config.Config
	require.NoError(t, cfg.Finalize())

	assert.Equal(t, config.BackendBolt, cfg.Store.Backend)
	assert.Equal(t, "/tmp/override.db", cfg.Store.Bolt.Path)
	assert.Equal(t, int64(4000), cfg.Store.Bolt.MaxRecordSizeBytes())
	assert.Equal(t, logging.LevelDebug, cfg.Logging.Level)
	assert.Equal(t, 50, cfg.Pagination.MaxPageSize)
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.Config
		prefix string
	}{
		{"backend", config.Config{Store: config.StoreConfig{Backend: "redis"}}, "store:"},
		{"logging", config.Config{Logging: logging.Config{Level: "loud"}}, "logging:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.prefix)
		})
	}
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[store]
backend = "postgres"

[database]
name = "entities"
ssl_mode = "require"
`))
	require.NoError(t, err)

	assert.Equal(t, config.BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, "entities", cfg.Database.Name)
	assert.Equal(t, "require", cfg.Database.SSLMode)
}
