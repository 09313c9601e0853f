package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 2380, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "database/migrations", cfg.MigrationsDir)
	assert.Equal(t, "en", cfg.Locales.Default)
	assert.Equal(t, []string{"en"}, cfg.Locales.Supported)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, "elkcms:", cfg.Cache.Prefix)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9090
env: production
dsn: user:secret@tcp(db:3306)/cms?parseTime=True
redis_url: redis://cache:6379/0
migrations_dir: migrations
locales:
  supported: [en, it]
  default: it
cache:
  enabled: false
  ttl_minutes: 5
  prefix: "cms:"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, "it", cfg.Locales.Default)
	assert.Equal(t, []string{"en", "it"}, cfg.Locales.Supported)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, "cms:", cfg.Cache.Prefix)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a port"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeAddsDefaultLocaleToSupported(t *testing.T) {
	cfg := &AppConfig{Locales: LocalesConfig{Supported: []string{"it", "de"}, Default: "en"}}
	cfg.normalize()
	assert.Equal(t, []string{"en", "it", "de"}, cfg.Locales.Supported)
}
