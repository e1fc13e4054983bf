package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Web       WebConfig       `mapstructure:"web"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	History   HistoryConfig   `mapstructure:"history"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// WebConfig holds settings for the HTML front page
type WebConfig struct {
	APIURL         string        `mapstructure:"api_url"` // Base URL of the generation API, empty means this server
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// RateLimitConfig holds per-client limits for the generation endpoint
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerMinute float64 `mapstructure:"requests_per_minute"`
	Burst             int     `mapstructure:"burst"`
	ExemptLoopback    bool    `mapstructure:"exempt_loopback"` // Skip limits for 127.0.0.1 / ::1 callers
}

// HistoryConfig holds settings for the optional generation history
type HistoryConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	DSN           string `mapstructure:"dsn"`
	RetentionDays int    `mapstructure:"retention_days"`
	CleanupCron   string `mapstructure:"cleanup_cron"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stdout, stderr or file path
}

// APIBaseURL returns the URL the front page uses to reach the generation endpoint.
// A wildcard or empty listen host is reached over loopback.
func (c *Config) APIBaseURL() string {
	if c.Web.APIURL != "" {
		return c.Web.APIURL
	}

	host := c.Server.Host
	switch host {
	case "", "0.0.0.0", "::", "[::]":
		host = "127.0.0.1"
	}
	host = strings.Trim(host, "[]")
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Server.Port))
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Load .env file if present (ignore errors if not found)
	_ = godotenv.Load()
	_ = godotenv.Load(".env.local")

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".viral-agent"))
		}
	}

	v.SetEnvPrefix("VIRAL")
	v.AutomaticEnv()

	// Viper doesn't auto-bind underscored nested keys
	v.BindEnv("server.host", "VIRAL_SERVER_HOST")
	v.BindEnv("server.port", "VIRAL_SERVER_PORT", "PORT")
	v.BindEnv("web.api_url", "VIRAL_WEB_API_URL")
	v.BindEnv("rate_limit.enabled", "VIRAL_RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests_per_minute", "VIRAL_RATE_LIMIT_REQUESTS_PER_MINUTE")
	v.BindEnv("rate_limit.burst", "VIRAL_RATE_LIMIT_BURST")
	v.BindEnv("rate_limit.exempt_loopback", "VIRAL_RATE_LIMIT_EXEMPT_LOOPBACK")
	v.BindEnv("history.enabled", "VIRAL_HISTORY_ENABLED")
	v.BindEnv("history.dsn", "VIRAL_HISTORY_DSN")
	v.BindEnv("history.retention_days", "VIRAL_HISTORY_RETENTION_DAYS")
	v.BindEnv("logging.level", "VIRAL_LOGGING_LEVEL")
	v.BindEnv("logging.format", "VIRAL_LOGGING_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("web.api_url", "")
	v.SetDefault("web.request_timeout", "5s")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 60)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.exempt_loopback", true)

	// History is off unless an operator asks for it
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.dsn", "./data/viral-agent.db")
	v.SetDefault("history.retention_days", 30)
	v.SetDefault("history.cleanup_cron", "0 3 * * *") // 3am daily

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMinute <= 0 {
			return fmt.Errorf("rate_limit.requests_per_minute must be positive")
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit.burst must be at least 1")
		}
	}
	if c.History.Enabled {
		if c.History.DSN == "" {
			return fmt.Errorf("history.dsn is required when history is enabled")
		}
		if c.History.RetentionDays < 1 {
			return fmt.Errorf("history.retention_days must be at least 1")
		}
		if _, err := cron.ParseStandard(c.History.CleanupCron); err != nil {
			return fmt.Errorf("history.cleanup_cron is invalid: %w", err)
		}
	}
	return nil
}
