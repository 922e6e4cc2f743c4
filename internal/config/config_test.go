package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/shareit")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.IsProduction)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "uploads", cfg.UploadDir)
	})

	t.Run("missing dsn fails", func(t *testing.T) {
		t.Setenv("DB_DSN", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production flag", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/shareit")
		t.Setenv("APP_ENV", "prod")
		t.Setenv("PROD_ORIGINS", "https://shareit.example.com")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction)
		assert.Equal(t, "https://shareit.example.com", cfg.ProdOrigins)
	})
}
