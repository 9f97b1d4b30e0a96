package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CORSSettings lists the browser origins allowed to call the API with credentials
type CORSSettings struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RestConfig is the configuration of the clm-api binary
type RestConfig struct {
	Port     string           `mapstructure:"port" validate:"required,numeric"`
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Auth     AuthSettings     `mapstructure:"auth"`
	Redis    RedisSettings    `mapstructure:"redis"`
	CORS     CORSSettings     `mapstructure:"cors"`
}

// Validate checks every section of the REST configuration
func (c *RestConfig) Validate() error {
	if err := validator.New().Var(c.Port, "required,numeric"); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Redis.Validate()
}

// InitializeRestConfig loads and validates the REST configuration from path
func InitializeRestConfig(path string) (*RestConfig, error) {
	var cfg RestConfig
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rest config: %w", err)
	}
	return &cfg, nil
}
