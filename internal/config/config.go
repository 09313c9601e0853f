// Package config loads runtime configuration from YAML and fills defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort          = 2380
	defaultEnv           = "development"
	defaultDSN           = "root:password@tcp(127.0.0.1:3306)/elkcms?charset=utf8mb4&parseTime=True&loc=Local"
	defaultMigrationsDir = "database/migrations"
	defaultLocale        = "en"
	defaultCacheTTLMin   = 60
	defaultCachePrefix   = "elkcms:"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int           `yaml:"port"`
	DSN            string        `yaml:"dsn"` // MySQL DSN
	RedisURL       string        `yaml:"redis_url"`
	Env            string        `yaml:"env"` // "development" | "production"
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MigrationsDir  string        `yaml:"migrations_dir"`
	Locales        LocalesConfig `yaml:"locales"`
	Cache          CacheConfig   `yaml:"cache"`
}

// LocalesConfig lists the supported locale codes and the untranslated default.
type LocalesConfig struct {
	Supported []string `yaml:"supported"`
	Default   string   `yaml:"default"`
}

// CacheConfig controls the model-definition cache.
type CacheConfig struct {
	Enabled    *bool  `yaml:"enabled"`
	TTLMinutes int    `yaml:"ttl_minutes"`
	Prefix     string `yaml:"prefix"`
}

// Load reads the YAML config at path. A missing file yields pure defaults.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	return cfg, nil
}

func (c *AppConfig) normalize() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.DSN == "" {
		c.DSN = defaultDSN
	}
	if c.MigrationsDir == "" {
		c.MigrationsDir = defaultMigrationsDir
	}
	if c.Locales.Default == "" {
		c.Locales.Default = defaultLocale
	}
	if len(c.Locales.Supported) == 0 {
		c.Locales.Supported = []string{c.Locales.Default}
	}
	if !contains(c.Locales.Supported, c.Locales.Default) {
		c.Locales.Supported = append([]string{c.Locales.Default}, c.Locales.Supported...)
	}
	if c.Cache.Enabled == nil {
		enabled := true
		c.Cache.Enabled = &enabled
	}
	if c.Cache.TTLMinutes <= 0 {
		c.Cache.TTLMinutes = defaultCacheTTLMin
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = defaultCachePrefix
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// CacheEnabled reports whether the model-definition cache is on.
func (c *AppConfig) CacheEnabled() bool { return c.Cache.Enabled == nil || *c.Cache.Enabled }

// CacheTTL returns the configured definition TTL.
func (c *AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
