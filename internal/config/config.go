package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config captures the settings required to boot the calculation service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Materials MaterialsConfig `yaml:"materials"`
	Alerts    AlertsConfig    `yaml:"alerts"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig controls the HTTP listener behaviour.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	MetricsAddress  string        `yaml:"metricsAddress"`
	GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
}

// DatabaseConfig configures the Postgres inspection store. An empty DSN
// leaves the service running on the in-memory store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// MaterialsConfig points at the YAML allowable-stress table.
type MaterialsConfig struct {
	TablePath string `yaml:"tablePath"`
}

// AlertsConfig controls criticality alert delivery.
type AlertsConfig struct {
	WebhookURL string        `yaml:"webhookURL"`
	Timeout    time.Duration `yaml:"timeout"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load initialises Config from an optional .env file, a YAML file, and
// environment overrides, in that order.
func Load(path string) (*Config, error) {
	// Missing .env files are fine; they only exist in development.
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("API510_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8080",
			MetricsAddress:  ":2112",
			GracefulTimeout: 10 * time.Second,
		},
		Materials: MaterialsConfig{
			TablePath: "configs/materials/default.yaml",
		},
		Alerts: AlertsConfig{
			Timeout: 5 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", JSON: false},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("API510_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("API510_METRICS_ADDRESS"); v != "" {
		cfg.Server.MetricsAddress = v
	}
	if v := os.Getenv("API510_DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" && cfg.Database.DSN == "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("API510_MATERIALS_PATH"); v != "" {
		cfg.Materials.TablePath = v
	}
	if v := os.Getenv("API510_ALERT_WEBHOOK_URL"); v != "" {
		cfg.Alerts.WebhookURL = v
	}
	if v := os.Getenv("API510_ALERT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Alerts.Timeout = d
		}
	}
	if v := os.Getenv("API510_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("API510_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
}
