package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/entity-handlers/pkg/pagination"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &pagination.Config{}
	require.NoError(t, cfg.Finalize(nil))

	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
}

func TestConfig_Finalize_PreservesValues(t *testing.T) {
	cfg := &pagination.Config{DefaultPageSize: 10, MaxPageSize: 50}
	require.NoError(t, cfg.Finalize(nil))

	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, 50, cfg.MaxPageSize)
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_PAGINATION_DEFAULT_PAGE_SIZE", "15")
	t.Setenv("TEST_PAGINATION_MAX_PAGE_SIZE", "75")

	cfg := &pagination.Config{}
	env := &pagination.Env{
		DefaultPageSize: "TEST_PAGINATION_DEFAULT_PAGE_SIZE",
		MaxPageSize:     "TEST_PAGINATION_MAX_PAGE_SIZE",
	}
	require.NoError(t, cfg.Finalize(env))

	assert.Equal(t, 15, cfg.DefaultPageSize)
	assert.Equal(t, 75, cfg.MaxPageSize)
}

func TestConfig_Finalize_DefaultExceedsMax(t *testing.T) {
	cfg := &pagination.Config{DefaultPageSize: 50, MaxPageSize: 25}
	assert.Error(t, cfg.Finalize(nil))
}

func TestConfig_Merge(t *testing.T) {
	tests := []struct {
		name    string
		base    pagination.Config
		overlay pagination.Config
		want    pagination.Config
	}{
		{
			name:    "overlay replaces set values",
			base:    pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
			overlay: pagination.Config{DefaultPageSize: 5, MaxPageSize: 10},
			want:    pagination.Config{DefaultPageSize: 5, MaxPageSize: 10},
		},
		{
			name:    "zero overlay preserves base",
			base:    pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
			overlay: pagination.Config{},
			want:    pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.base
			cfg.Merge(&tt.overlay)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	assert.Equal(t, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, pagination.DefaultConfig())
}
