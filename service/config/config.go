package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration loaded from environment variables.
// All required fields are validated at startup to ensure fail-fast behavior.
//
// Network selection is never ambient: callers choose "main" or
// "development" explicitly per operation, and this config only supplies
// the endpoint each network maps to.
type Config struct {
	// Logging configuration
	LogLevel string

	// Solana RPC endpoints
	SolanaMainRPCURL        string
	SolanaDevelopmentRPCURL string

	// NATS configuration (optional; event publishing is disabled when empty)
	NATSURL string

	// Default transaction encoding: "legacy" or "versioned"
	DefaultEncoding string
}

// Load reads configuration from environment variables and validates all
// required fields. Returns an error if any required configuration is
// missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{}
	var errs []error

	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	cfg.SolanaMainRPCURL = os.Getenv("SOLANA_MAIN_RPC_URL")
	if cfg.SolanaMainRPCURL == "" {
		errs = append(errs, fmt.Errorf("SOLANA_MAIN_RPC_URL is required"))
	}

	cfg.SolanaDevelopmentRPCURL = os.Getenv("SOLANA_DEVELOPMENT_RPC_URL")
	if cfg.SolanaDevelopmentRPCURL == "" {
		errs = append(errs, fmt.Errorf("SOLANA_DEVELOPMENT_RPC_URL is required"))
	}

	// Pointing both networks at one endpoint is always a misconfiguration.
	if cfg.SolanaMainRPCURL != "" && cfg.SolanaMainRPCURL == cfg.SolanaDevelopmentRPCURL {
		errs = append(errs, fmt.Errorf("SOLANA_MAIN_RPC_URL and SOLANA_DEVELOPMENT_RPC_URL must be different"))
	}

	cfg.NATSURL = os.Getenv("NATS_URL")

	cfg.DefaultEncoding = getEnvOrDefault("DEFAULT_ENCODING", "legacy")
	if cfg.DefaultEncoding != "legacy" && cfg.DefaultEncoding != "versioned" {
		errs = append(errs, fmt.Errorf("DEFAULT_ENCODING must be %q or %q, got %q", "legacy", "versioned", cfg.DefaultEncoding))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %v", errs)
	}

	return cfg, nil
}

// MustLoad is like Load but panics if configuration is invalid.
// Useful for initialization where misconfiguration should halt startup.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Validate checks if the configuration is valid.
// This is useful for testing configuration without loading from env.
func (c *Config) Validate() error {
	var errs []error

	if c.SolanaMainRPCURL == "" {
		errs = append(errs, fmt.Errorf("SolanaMainRPCURL is required"))
	}

	if c.SolanaDevelopmentRPCURL == "" {
		errs = append(errs, fmt.Errorf("SolanaDevelopmentRPCURL is required"))
	}

	if c.SolanaMainRPCURL != "" && c.SolanaMainRPCURL == c.SolanaDevelopmentRPCURL {
		errs = append(errs, fmt.Errorf("SolanaMainRPCURL and SolanaDevelopmentRPCURL must be different"))
	}

	if c.DefaultEncoding != "legacy" && c.DefaultEncoding != "versioned" {
		errs = append(errs, fmt.Errorf("DefaultEncoding must be \"legacy\" or \"versioned\""))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errs)
	}

	return nil
}

// RPCURLForNetwork maps a network selector to its configured endpoint.
func (c *Config) RPCURLForNetwork(network string) (string, error) {
	switch network {
	case "main":
		return c.SolanaMainRPCURL, nil
	case "development":
		return c.SolanaDevelopmentRPCURL, nil
	default:
		return "", fmt.Errorf("unknown network %q (want \"main\" or \"development\")", network)
	}
}

// getEnvOrDefault returns the environment variable value or a default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
