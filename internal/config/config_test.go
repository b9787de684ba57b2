package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Default Values", func(t *testing.T) {
		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "local", cfg.AppEnv)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "novaurl", cfg.DBName)
		assert.Equal(t, "sqlite://novaurl.db", cfg.DatabaseURL)
		assert.Equal(t, "localhost:3000", cfg.PublicDomain)
		assert.Equal(t, "*", cfg.CORSOrigins)
		assert.Equal(t, "http://ip-api.com/json", cfg.GeoAPIURL)
	})

	t.Run("Environment Variables", func(t *testing.T) {
		os.Setenv("PORT", "9999")
		os.Setenv("PUBLIC_DOMAIN", "nova.example.com")
		defer os.Unsetenv("PORT")
		defer os.Unsetenv("PUBLIC_DOMAIN")

		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "9999", cfg.Port)
		assert.Equal(t, "nova.example.com", cfg.PublicDomain)
	})

	t.Run("Store Name Names The Default SQLite File", func(t *testing.T) {
		os.Setenv("DB_NAME", "linkdb")
		defer os.Unsetenv("DB_NAME")

		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "sqlite://linkdb.db", cfg.DatabaseURL)
	})

	t.Run("Explicit Connection String Wins", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost:5432/novaurl")
		defer os.Unsetenv("DATABASE_URL")

		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/novaurl", cfg.DatabaseURL)
	})
}

func TestAllowedOrigins(t *testing.T) {
	t.Run("Wildcard", func(t *testing.T) {
		cfg := Config{CORSOrigins: "*"}
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	})

	t.Run("Multiple Origins", func(t *testing.T) {
		cfg := Config{CORSOrigins: "https://app.example.com, https://admin.example.com"}
		assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins())
	})

	t.Run("Empty Entries Skipped", func(t *testing.T) {
		cfg := Config{CORSOrigins: "https://a.com,,"}
		assert.Equal(t, []string{"https://a.com"}, cfg.AllowedOrigins())
	})
}
