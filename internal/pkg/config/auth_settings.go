package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AuthSettings configures session tokens, cookies and login throttling
type AuthSettings struct {
	JWTSecret     string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenTTL      time.Duration `mapstructure:"token_ttl" validate:"required"`
	SecureCookies bool          `mapstructure:"secure_cookies"`
	CookieDomain  string        `mapstructure:"cookie_domain"`
	LoginRPS      float64       `mapstructure:"login_rps" validate:"gt=0"`
	LoginBurst    int           `mapstructure:"login_burst" validate:"gte=1"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	if s.TokenTTL < time.Minute {
		return fmt.Errorf("token ttl must be at least one minute")
	}
	return nil
}
