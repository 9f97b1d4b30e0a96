package config

import (
	"fmt"
	"time"
)

// RedisSettings configures the optional contract read cache. An empty Addr
// disables caching.
type RedisSettings struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a Redis address is configured
func (s *RedisSettings) Enabled() bool {
	return s.Addr != ""
}

// Validate checks that all fields in RedisSettings are valid
func (s *RedisSettings) Validate() error {
	if !s.Enabled() {
		return nil
	}
	if s.DB < 0 || s.DB > 15 {
		return fmt.Errorf("redis db must be between 0 and 15")
	}
	if s.TTL <= 0 {
		return fmt.Errorf("redis ttl must be positive when redis is enabled")
	}
	return nil
}
