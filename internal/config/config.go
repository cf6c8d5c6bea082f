package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the notes service.
// Environment variables are parsed from the NOTENEST_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Store selection: sqlite, postgres or mongo
	DBDriver      string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN   string `envconfig:"POSTGRES_DSN" default:""`
	MongoURI      string `envconfig:"MONGO_URI" default:""`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"notenest"`

	BootstrapTimeoutSeconds int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"5"`

	// Classification
	Classifier            string `envconfig:"CLASSIFIER" default:"keyword"`
	ClassifierModel       string `envconfig:"CLASSIFIER_MODEL" default:"llama3.2"`
	OllamaURL             string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	ClassifierTimeoutMs   int    `envconfig:"CLASSIFIER_TIMEOUT_MS" default:"4000"`
	ClassifierMaxAttempts int    `envconfig:"CLASSIFIER_MAX_ATTEMPTS" default:"2"`

	// Health
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates driver selections and fills derived values.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case "", "sqlite":
		c.DBDriver = "sqlite"
		if c.SQLitePath == "" {
			c.SQLitePath = "data/notenest.db"
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("NOTENEST_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	case "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("NOTENEST_MONGO_URI is required when DB_DRIVER=mongo")
		}
		if c.MongoDatabase == "" {
			c.MongoDatabase = "notenest"
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	switch c.Classifier {
	case "", "keyword":
		c.Classifier = "keyword"
	case "ollama":
	default:
		return fmt.Errorf("unsupported CLASSIFIER: %s", c.Classifier)
	}

	if c.ClassifierTimeoutMs <= 0 {
		c.ClassifierTimeoutMs = 4000
	}
	if c.ClassifierMaxAttempts <= 0 {
		c.ClassifierMaxAttempts = 1
	}
	if c.HealthIntervalSeconds <= 0 {
		c.HealthIntervalSeconds = 30
	}
	return nil
}

// New creates a new Config by parsing environment variables
// Example: NOTENEST_DB_DRIVER=postgres, NOTENEST_HTTP_PORT=9000
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("NOTENEST", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("classifier", cfg.Classifier).
		Str("classifier_model", cfg.ClassifierModel).
		Int("classifier_timeout_ms", cfg.ClassifierTimeoutMs).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Bool("mongo_uri_present", cfg.MongoURI != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:               EnvTesting,
		LogLevel:                  "debug",
		HTTPPort:                  8080,
		DBDriver:                  "sqlite",
		MongoDatabase:             "notenest_test",
		BootstrapTimeoutSeconds:   2,
		Classifier:                "keyword",
		ClassifierModel:           "llama3.2",
		OllamaURL:                 "http://localhost:11434",
		ClassifierTimeoutMs:       500,
		ClassifierMaxAttempts:     1,
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
