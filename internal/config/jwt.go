package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// JWTConfig holds the signing settings for API bearer tokens. Auth is
// considered enabled exactly when a config can be built, so the secret is
// mandatory here rather than defaulted.
type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// defaultTokenTTL applies when JWT_EXPIRATION_HOURS is unset.
const defaultTokenTTL = 24 * time.Hour

// NewJWTConfig builds token-signing settings from JWT_SECRET and
// JWT_EXPIRATION_HOURS. A missing secret is an error; callers treat it as
// "auth disabled".
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	ttl := defaultTokenTTL
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: %w", raw, err)
		}
		if hours < 1 {
			return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1, got %d", hours)
		}
		ttl = time.Duration(hours) * time.Hour
	}

	return &JWTConfig{Secret: secret, TokenTTL: ttl}, nil
}
