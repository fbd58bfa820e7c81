package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML configuration file and unmarshals it into the specified type.
// T must be a struct type that can be unmarshaled from YAML.
func LoadConfig[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg T
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

type settings interface {
	ApplyDefaults()
	Validate() error
}

// load reads, defaults and validates one config file.
func load[T any, P interface {
	*T
	settings
}](path, com string) (*T, error) {
	logger := log.With().Str("com", com).Logger()

	cfg, err := LoadConfig[T](path)
	if err != nil {
		return nil, err
	}
	P(cfg).ApplyDefaults()
	if err := P(cfg).Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	logger.Debug().Str("file", path).Msg("loaded configuration")
	return cfg, nil
}

// LoadGeneratorConfig reads a corpus generator configuration file.
func LoadGeneratorConfig(path string) (*Generator, error) {
	return load[Generator](path, "config-loader")
}

// LoadServerConfig reads a mock service configuration file.
func LoadServerConfig(path string) (*Server, error) {
	return load[Server](path, "config-loader")
}

// LoadClientConfig reads a query client configuration file.
func LoadClientConfig(path string) (*Client, error) {
	cfg, err := load[Client](path, "config-loader")
	if err != nil {
		return nil, err
	}
	logger := log.With().Str("com", "config-loader").Logger()
	logger.Info().
		Str("server", cfg.Server.Address).
		Str("client_id", cfg.ClientID).
		Msg("loaded client configuration")
	return cfg, nil
}
