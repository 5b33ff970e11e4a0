package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Empty(t, cfg.Telegram.BotToken)
}

func TestLoadConfig_ReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  address: ":9090"
database:
  host: db.internal
  name: coaching_test
jwt:
  secret: file-secret
  expiration: 30m
telegram:
  bot_token: "123:abc"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "coaching_test", cfg.Database.Name)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)

	// File values merge with defaults.
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "hunter2",
		Name:     "coaching_app",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal user=app password=hunter2 dbname=coaching_app port=5433 sslmode=require",
		d.DSN())
}
