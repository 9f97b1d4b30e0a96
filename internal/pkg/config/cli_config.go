package config

import "fmt"

// CliConfig is the configuration of the clmctl maintenance tool
type CliConfig struct {
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
}

// InitializeCliConfig loads the database and logger sections from path. It
// accepts the REST configuration file as-is.
func InitializeCliConfig(path string) (*CliConfig, error) {
	var cfg CliConfig
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cli config: %w", err)
	}
	if err := cfg.Logger.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cli config: %w", err)
	}
	return &cfg, nil
}
