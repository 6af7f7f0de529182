package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSessionSecret is only acceptable outside release mode.
const DefaultSessionSecret = "secret_key_change_me"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Cache    CacheConfig
	Media    MediaConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
	Mode string // gin mode: debug, release, test
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver string // postgres or sqlite
	URL    string
}

// SessionConfig holds the cookie session configuration
type SessionConfig struct {
	Name   string
	Secret string
}

// CacheConfig holds page cache configuration. An empty RedisURL selects the
// in-process LRU store.
type CacheConfig struct {
	TTL      time.Duration
	Size     int
	RedisURL string
}

// MediaConfig holds uploaded files configuration
type MediaConfig struct {
	Root           string
	URL            string
	MaxUploadBytes int64
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from .env, environment variables and config file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("YATUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/yatube")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
			Mode: v.GetString("server.mode"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("database.driver"),
			URL:    v.GetString("database.url"),
		},
		Session: SessionConfig{
			Name:   v.GetString("session.name"),
			Secret: v.GetString("session.secret"),
		},
		Cache: CacheConfig{
			TTL:      v.GetDuration("cache.ttl"),
			Size:     v.GetInt("cache.size"),
			RedisURL: v.GetString("cache.redis_url"),
		},
		Media: MediaConfig{
			Root:           v.GetString("media.root"),
			URL:            v.GetString("media.url"),
			MaxUploadBytes: v.GetInt64("media.max_upload_bytes"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable")
	v.SetDefault("session.name", "yatube_session")
	v.SetDefault("session.secret", DefaultSessionSecret)
	v.SetDefault("cache.ttl", 20*time.Minute)
	v.SetDefault("cache.size", 500)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("media.root", "./media")
	v.SetDefault("media.url", "/media")
	v.SetDefault("media.max_upload_bytes", 5<<20)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Addr returns the listen address of the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if c.Server.Mode == "release" && c.Session.Secret == DefaultSessionSecret {
		return fmt.Errorf("session secret must be changed in release mode")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive")
	}
	if c.Media.MaxUploadBytes <= 0 {
		return fmt.Errorf("media max upload bytes must be positive")
	}
	return nil
}
