// Package config provides centralized configuration for domaincomb:
// defaults, an optional YAML file, and DOMAINCOMB_* environment overrides.
package config

import "time"

// Config represents the complete application configuration.
type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// RegistryConfig configures the RDAP lookup client. The endpoint template
// is injected into the checker at construction; there is no process-wide
// endpoint constant.
type RegistryConfig struct {
	// BaseURL is the fallback RDAP base for TLDs without an entry in
	// Endpoints. Lookups hit {base}/domain/{name}.
	BaseURL string `mapstructure:"base_url"`

	// Endpoints routes specific TLDs to their registry's RDAP base.
	// Keys are TLDs without a leading dot.
	Endpoints map[string]string `mapstructure:"endpoints"`

	UserAgent  string        `mapstructure:"user_agent"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	Backoff    time.Duration `mapstructure:"backoff"`
}

// EndpointFor resolves the RDAP base URL for a TLD.
func (r RegistryConfig) EndpointFor(tld string) string {
	if base, ok := r.Endpoints[tld]; ok && base != "" {
		return base
	}
	return r.BaseURL
}

// BatchConfig configures the orchestrator.
type BatchConfig struct {
	// Delay is the politeness pause enforced between registry requests.
	Delay time.Duration `mapstructure:"delay"`

	// Workers is the number of concurrent lookups. One means strictly
	// sequential checking.
	Workers int `mapstructure:"workers"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level: trace, debug, info, warn, error.
	Level string `mapstructure:"level"`
}
