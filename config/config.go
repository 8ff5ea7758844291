package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Wiki    WikiConfig
	Cache   CacheConfig
	Session SessionConfig
	Summary SummaryConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WikiConfig holds encyclopedia API configuration
type WikiConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	UserAgent   string `mapstructure:"user_agent"`
	SearchLimit int    `mapstructure:"search_limit"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// SessionConfig holds comparison-session configuration
type SessionConfig struct {
	Debounce     time.Duration `mapstructure:"debounce"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// SummaryConfig holds the optional AI-summary proxy configuration
type SummaryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Provider string `mapstructure:"provider"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/specwise/")

	// Environment variable settings
	v.SetEnvPrefix("SPECWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Wiki defaults
	v.SetDefault("wiki.base_url", "https://en.wikipedia.org")
	v.SetDefault("wiki.user_agent", "SpecWise/1.0")
	v.SetDefault("wiki.search_limit", 8)

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Session defaults
	v.SetDefault("session.debounce", "300ms")
	v.SetDefault("session.fetch_timeout", "15s")

	// Summary defaults
	v.SetDefault("summary.enabled", false)
	v.SetDefault("summary.endpoint", "")
	v.SetDefault("summary.provider", "openrouter")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Wiki.BaseURL == "" {
		return fmt.Errorf("wiki base URL is required (set SPECWISE_WIKI_BASE_URL)")
	}

	if config.Wiki.SearchLimit <= 0 || config.Wiki.SearchLimit > 50 {
		return fmt.Errorf("wiki search limit must be between 1 and 50, got: %d", config.Wiki.SearchLimit)
	}

	if config.Summary.Enabled && config.Summary.Endpoint == "" {
		return fmt.Errorf("summary endpoint is required when summary is enabled")
	}

	return nil
}
