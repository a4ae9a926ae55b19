// Package config provides configuration management for the FuturoLogia service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/futurologia/internal/scoring"
)

const (
	envPrefix         = "FUTUROLOGIA"
	defaultConfigPath = "config/config.yaml"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()

	// Read the expanded configuration
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(envPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "futurologia")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("server.allowed_origin", "*")
	v.SetDefault("server.max_body_bytes", 1<<16)

	// The bare FOOTBALL_API_KEY variable keeps deployments of the edge
	// function working unchanged
	v.SetDefault("football_api.enabled", true)
	v.SetDefault("football_api.base_url", "https://v3.football.api-sports.io")
	v.SetDefault("football_api.api_key", os.Getenv("FOOTBALL_API_KEY"))
	v.SetDefault("football_api.season", 0)
	v.SetDefault("football_api.timeout_seconds", 5)
	v.SetDefault("football_api.max_retries", 2)
	v.SetDefault("football_api.rate_limit", 5.0)
	v.SetDefault("football_api.circuit_breaker_max", 5)
	v.SetDefault("football_api.circuit_cooldown_seconds", 60)

	v.SetDefault("cache.standings_ttl_seconds", 3600)

	w := scoring.DefaultWeights()
	for side, sw := range map[string]scoring.SideWeights{"home": w.Home, "away": w.Away} {
		v.SetDefault("scoring."+side+".wins", sw.Wins)
		v.SetDefault("scoring."+side+".goals", sw.Goals)
		v.SetDefault("scoring."+side+".position", sw.Position)
		v.SetDefault("scoring."+side+".corners", sw.Corners)
		v.SetDefault("scoring."+side+".yellow_cards", sw.YellowCards)
		v.SetDefault("scoring."+side+".red_cards", sw.RedCards)
		v.SetDefault("scoring."+side+".strength", sw.Strength)
		v.SetDefault("scoring."+side+".points", sw.Points)
	}
	v.SetDefault("scoring.position_base", w.PositionBase)
	v.SetDefault("scoring.yellow_ceiling", w.YellowCeiling)
	v.SetDefault("scoring.red_ceiling", w.RedCeiling)
	v.SetDefault("scoring.home_advantage", w.HomeAdvantage)
	v.SetDefault("scoring.draw_min", w.DrawMin)
	v.SetDefault("scoring.draw_max", w.DrawMax)
	v.SetDefault("scoring.draw_spread", w.DrawSpread)
	v.SetDefault("scoring.max_confidence", w.MaxConfidence)
	v.SetDefault("scoring.fallback_confidence", w.FallbackConfidence)
	v.SetDefault("scoring.max_reasons", w.MaxReasons)

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.recent_limit", 20)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 5)
	v.SetDefault("database.min_connections", 1)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.sampling_rate", 0.05)
	v.SetDefault("tracing.daemon_addr", "127.0.0.1:2000")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.cache_warm_schedule", "@every 30m")
}
