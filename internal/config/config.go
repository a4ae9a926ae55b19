// Package config provides configuration management for the FuturoLogia service.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/yourusername/futurologia/internal/scoring"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	FootballAPI FootballAPIConfig `mapstructure:"football_api"`
	Cache       CacheConfig       `mapstructure:"cache" validate:"required"`
	Scoring     scoring.Weights   `mapstructure:"scoring"`
	History     HistoryConfig     `mapstructure:"history"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the public HTTP API listener
type ServerConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
	AllowedOrigin          string `mapstructure:"allowed_origin" validate:"required"`
	MaxBodyBytes           int64  `mapstructure:"max_body_bytes" validate:"required,gt=0"`
}

// FootballAPIConfig represents the upstream team-data API configuration.
// An empty APIKey is allowed at load time; analysis requests then fail
// with a configuration error.
type FootballAPIConfig struct {
	Enabled                bool    `mapstructure:"enabled"`
	BaseURL                string  `mapstructure:"base_url" validate:"required,url"`
	APIKey                 string  `mapstructure:"api_key"`
	Season                 int     `mapstructure:"season" validate:"gte=0"`
	TimeoutSeconds         int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries             int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit              float64 `mapstructure:"rate_limit" validate:"gt=0"`
	CircuitBreakerMax      int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
	CircuitCooldownSeconds int     `mapstructure:"circuit_cooldown_seconds" validate:"gte=0"`
}

// CacheConfig represents in-memory cache configuration
type CacheConfig struct {
	StandingsTTLSeconds int `mapstructure:"standings_ttl_seconds" validate:"required,gt=0"`
}

// HistoryConfig represents the optional analysis history store
type HistoryConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	RecentLimit int  `mapstructure:"recent_limit" validate:"required,gt=0"`
}

// DatabaseConfig represents database connection configuration. Only
// required when history is enabled.
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
	MinConnections int    `mapstructure:"min_connections" validate:"gte=0"`
}

// MetricsConfig represents metrics and health listener configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

// SchedulerConfig represents background job configuration
type SchedulerConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CacheWarmSchedule string `mapstructure:"cache_warm_schedule" validate:"required,cronspec"`
}

// TracingConfig represents AWS X-Ray tracing configuration
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	SamplingRate float64 `mapstructure:"sampling_rate" validate:"gte=0,lte=1"`
	DaemonAddr   string  `mapstructure:"daemon_addr" validate:"required,hostname_port"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HasFootballAPIKey reports whether an upstream API key is configured
func (c *Config) HasFootballAPIKey() bool {
	return c.FootballAPI.APIKey != ""
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the listen address of the API server
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// GetStandingsTTL returns the standings cache TTL
func (c *Config) GetStandingsTTL() time.Duration {
	return time.Duration(c.Cache.StandingsTTLSeconds) * time.Second
}
