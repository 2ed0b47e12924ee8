package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Variables that
// are unset or empty leave the current value untouched. Duration variables
// use Go duration syntax ("15m", "168h"); invalid values panic, same as an
// invalid JSON config file would.
func parseEnv(config *Config) {
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_VALIDITY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v := os.Getenv("REFRESH_SECRET_VALIDITY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.RefreshSecretValidityDuration = d
	}
}
