package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// =============================================================================
// Configuration - Server Settings
// =============================================================================

// Config holds all settings for the HTTP API server.
//
// Values are resolved in order of precedence: environment variables
// (NIVO_ prefix, e.g. NIVO_STORE_BACKEND), then an optional nivo.toml
// config file, then built-in defaults.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `mapstructure:"addr"`

	// CORSOrigins lists the origins allowed to call the API. Defaults to
	// all origins so embedded charts work out of the box.
	CORSOrigins []string `mapstructure:"cors_origins"`

	Cache  CacheConfig  `mapstructure:"cache"`
	Store  StoreConfig  `mapstructure:"store"`
	Limits LimitsConfig `mapstructure:"limits"`
}

// CacheConfig selects and tunes the layout/artifact cache backend.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string `mapstructure:"backend"`

	// Capacity bounds the in-memory cache entry count.
	Capacity int `mapstructure:"capacity"`

	// Redis connection settings, used when Backend is "redis".
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StoreConfig selects and tunes the chart document store.
type StoreConfig struct {
	// Backend is "memory" or "mongo".
	Backend string `mapstructure:"backend"`

	// MongoDB connection settings, used when Backend is "mongo".
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`

	// ChartTTL is how long posted charts stay retrievable.
	ChartTTL time.Duration `mapstructure:"chart_ttl"`

	// CleanupInterval is how often expired charts are swept.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// LimitsConfig bounds per-request resource usage.
type LimitsConfig struct {
	// MaxBodyBytes caps the accepted request body size.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`

	// RequestTimeout cancels handler contexts that run too long.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// =============================================================================
// Loading - Defaults, File, Environment
// =============================================================================

// Load reads configuration from defaults, an optional nivo.toml, and
// NIVO_* environment variables.
//
// The config file is searched for in the current directory,
// ~/.config/nivo, and /etc/nivo. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("nivo")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(homeDir(), ".config", "nivo"))
	v.AddConfigPath("/etc/nivo")

	v.SetEnvPrefix("NIVO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return unmarshalConfig(v)
}

// LoadFromFile reads configuration from a specific file instead of the
// search paths. Environment variables still take precedence.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)

	v.SetEnvPrefix("NIVO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	return unmarshalConfig(v)
}

func unmarshalConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("cors_origins", []string{"*"})

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.capacity", 512)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.uri", "mongodb://localhost:27017")
	v.SetDefault("store.database", "nivo")
	v.SetDefault("store.collection", "charts")
	v.SetDefault("store.chart_ttl", "720h")
	v.SetDefault("store.cleanup_interval", "1h")

	v.SetDefault("limits.max_body_bytes", 1<<20)
	v.SetDefault("limits.request_timeout", "30s")
}

// Validate checks backend selections before any connection is attempted.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "", "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q (want memory or redis)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case "", "memory", "mongo":
	default:
		return fmt.Errorf("unknown store backend %q (want memory or mongo)", c.Store.Backend)
	}
	if c.Limits.RequestTimeout <= 0 {
		return fmt.Errorf("limits.request_timeout must be positive, got %s", c.Limits.RequestTimeout)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
