// Package common provides shared utilities for Vantage
package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Vantage
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Clients     ClientsConfig   `toml:"clients"`
	Cache       CacheConfig     `toml:"cache"`
	Storage     StorageConfig   `toml:"storage"`
	Auth        AuthConfig      `toml:"auth"`
	Valuation   ValuationConfig `toml:"valuation"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	FMP       FMPConfig       `toml:"fmp"`
	Gemini    GeminiConfig    `toml:"gemini"`
	WebSearch WebSearchConfig `toml:"websearch"`
}

// FMPConfig holds Financial Modeling Prep API configuration
type FMPConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FMPConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// WebSearchConfig holds DuckDuckGo search configuration
type WebSearchConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *WebSearchConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// CacheConfig selects the FMP response cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // "memory", "redis" or "none"
	RedisURL string `toml:"redis_url"`
	TTL      string `toml:"ttl"`
}

// GetTTL parses and returns the cache TTL
func (c *CacheConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return FreshnessStatements
	}
	return d
}

// StorageConfig holds SurrealDB connection settings for valuation history.
// An empty Address disables history.
type StorageConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// Enabled reports whether a history store is configured.
func (c *StorageConfig) Enabled() bool {
	return strings.TrimSpace(c.Address) != ""
}

// AuthConfig holds bearer-token configuration. An empty secret leaves the REST API open.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// ValuationConfig holds default assumptions for WACC and DCF. All rates are percentages.
type ValuationConfig struct {
	RiskFreeRate         float64 `toml:"risk_free_rate"`
	EquityRiskPremium    float64 `toml:"equity_risk_premium"`
	TerminalGrowthRate   float64 `toml:"terminal_growth_rate"`
	MarginOfSafety       float64 `toml:"margin_of_safety"`
	ProjectionYears      int     `toml:"projection_years"`
	FallbackDiscountRate float64 `toml:"fallback_discount_rate"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string `toml:"level"`
	Format   string `toml:"format"` // "console" or "json"
	FilePath string `toml:"file_path"`
}

// envOverrides lists the environment variables that override file values.
// Each is read as VANTAGE_<NAME>, falling back to the bare tag name.
type envOverrides struct {
	Environment     string `envconfig:"ENV"`
	Host            string `envconfig:"HOST"`
	Port            int    `envconfig:"PORT"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
	FMPBaseURL      string `envconfig:"FMP_BASE_URL"`
	FMPAPIKey       string `envconfig:"FMP_API_KEY"`
	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY"`
	GeminiModel     string `envconfig:"GEMINI_MODEL"`
	CacheBackend    string `envconfig:"CACHE_BACKEND"`
	RedisURL        string `envconfig:"REDIS_URL"`
	StorageAddress  string `envconfig:"STORAGE_ADDRESS"`
	StorageUsername string `envconfig:"STORAGE_USERNAME"`
	StoragePassword string `envconfig:"STORAGE_PASSWORD"`
	JWTSecret       string `envconfig:"AUTH_JWT_SECRET"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 4242,
		},
		Clients: ClientsConfig{
			FMP: FMPConfig{
				BaseURL:   "https://financialmodelingprep.com/stable",
				RateLimit: 5,
				Timeout:   "15s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
			WebSearch: WebSearchConfig{
				BaseURL: "https://html.duckduckgo.com/html/",
				Timeout: "10s",
			},
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     "1h",
		},
		Storage: StorageConfig{
			Namespace: "vantage",
			Database:  "vantage",
			Username:  "root",
			Password:  "root",
		},
		Auth: AuthConfig{
			TokenExpiry: "24h",
		},
		Valuation: ValuationConfig{
			RiskFreeRate:         4.5,
			EquityRiskPremium:    5.5,
			TerminalGrowthRate:   2.5,
			MarginOfSafety:       20.0,
			ProjectionYears:      5,
			FallbackDiscountRate: 10.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	normalize(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) error {
	var env envOverrides
	if err := envconfig.Process("VANTAGE", &env); err != nil {
		return fmt.Errorf("failed to process environment: %w", err)
	}

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setString(&config.Environment, env.Environment)
	setString(&config.Server.Host, env.Host)
	if env.Port > 0 {
		config.Server.Port = env.Port
	}
	setString(&config.Logging.Level, env.LogLevel)
	setString(&config.Clients.FMP.BaseURL, env.FMPBaseURL)
	setString(&config.Clients.FMP.APIKey, env.FMPAPIKey)
	setString(&config.Clients.Gemini.APIKey, env.GeminiAPIKey)
	setString(&config.Clients.Gemini.Model, env.GeminiModel)
	setString(&config.Cache.Backend, env.CacheBackend)
	setString(&config.Cache.RedisURL, env.RedisURL)
	setString(&config.Storage.Address, env.StorageAddress)
	setString(&config.Storage.Username, env.StorageUsername)
	setString(&config.Storage.Password, env.StoragePassword)
	setString(&config.Auth.JWTSecret, env.JWTSecret)

	if config.Clients.Gemini.APIKey == "" {
		setString(&config.Clients.Gemini.APIKey, os.Getenv("GOOGLE_API_KEY"))
	}

	return nil
}

// normalize lower-cases enumerations and restores defaults for nonsensical values.
func normalize(config *Config) {
	config.Cache.Backend = strings.ToLower(strings.TrimSpace(config.Cache.Backend))
	switch config.Cache.Backend {
	case "memory", "redis", "none":
	default:
		config.Cache.Backend = "memory"
	}

	config.Logging.Format = strings.ToLower(config.Logging.Format)

	defaults := NewDefaultConfig().Valuation
	if config.Valuation.ProjectionYears <= 0 {
		config.Valuation.ProjectionYears = defaults.ProjectionYears
	}
	if config.Valuation.FallbackDiscountRate <= 0 {
		config.Valuation.FallbackDiscountRate = defaults.FallbackDiscountRate
	}
	if config.Clients.FMP.RateLimit <= 0 {
		config.Clients.FMP.RateLimit = 5
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ValidateRequired returns the names of settings the service cannot run without.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if c.Clients.FMP.APIKey == "" {
		missing = append(missing, "clients.fmp.api_key")
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		missing = append(missing, "cache.redis_url")
	}
	return missing
}
