package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. CLM_DATABASE_DSN.
const EnvPrefix = "CLM"

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.output", LogOutputStdout)
	v.SetDefault("logger.compress", true)
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("auth.login_rps", 1)
	v.SetDefault("auth.login_burst", 5)
	v.SetDefault("redis.ttl", "5m")
	v.SetDefault("gateway.timeout", "30s")
	return v
}

// load reads the file at path into target
func load(path string, target interface{}) error {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := v.Unmarshal(target); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}
