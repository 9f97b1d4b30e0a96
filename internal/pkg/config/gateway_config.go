package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// GatewaySettings configures the browser-facing proxy
type GatewaySettings struct {
	BackendURL string        `mapstructure:"backend_url" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"required"`
}

// GatewayConfig is the configuration of the clm-gateway binary
type GatewayConfig struct {
	Port    string          `mapstructure:"port" validate:"required,numeric"`
	Gateway GatewaySettings `mapstructure:"gateway"`
	Logger  LoggerSettings  `mapstructure:"logger"`
	// JWTSecret verifies the session cookie before admin routes are forwarded
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// Validate checks every section of the gateway configuration
func (c *GatewayConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for GatewayConfig: %w", err)
	}
	return c.Logger.Validate()
}

// InitializeGatewayConfig loads and validates the gateway configuration from path
func InitializeGatewayConfig(path string) (*GatewayConfig, error) {
	var cfg GatewayConfig
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway config: %w", err)
	}
	return &cfg, nil
}
