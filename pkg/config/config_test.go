package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, 20*time.Minute, cfg.Cache.TTL)
	require.Equal(t, 500, cfg.Cache.Size)
	require.Equal(t, "/media", cfg.Media.URL)
	require.Equal(t, int64(5<<20), cfg.Media.MaxUploadBytes)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("YATUBE_DATABASE_DRIVER", "sqlite")
	t.Setenv("YATUBE_DATABASE_URL", "file:yatube.db")
	t.Setenv("YATUBE_CACHE_TTL", "90s")
	t.Setenv("YATUBE_CACHE_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("YATUBE_SERVER_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "file:yatube.db", cfg.Database.URL)
	require.Equal(t, 90*time.Second, cfg.Cache.TTL)
	require.Equal(t, "redis://localhost:6379/1", cfg.Cache.RedisURL)
	require.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("YATUBE_DATABASE_DRIVER", "mongodb")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Host: "localhost", Port: 8080, Mode: "debug"},
			Database: DatabaseConfig{Driver: "sqlite", URL: ":memory:"},
			Session:  SessionConfig{Name: "s", Secret: DefaultSessionSecret},
			Cache:    CacheConfig{TTL: time.Minute, Size: 10},
			Media:    MediaConfig{Root: "media", URL: "/media", MaxUploadBytes: 1024},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"empty database url", func(c *Config) { c.Database.URL = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"empty secret", func(c *Config) { c.Session.Secret = "" }},
		{"default secret in release", func(c *Config) { c.Server.Mode = "release" }},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"zero cache size", func(c *Config) { c.Cache.Size = 0 }},
		{"zero upload limit", func(c *Config) { c.Media.MaxUploadBytes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
