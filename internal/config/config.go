// Package config loads service configuration from environment variables.
//
// Everything has a local-development default so `go run ./cmd/server` works
// against a localhost Mongo with zero setup. Production deployments override
// via the environment; nothing reads env vars outside this package.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string
	// JWTSecret signs access tokens. Read once here, then held immutably by
	// the TokenService for the process lifetime.
	JWTSecret string
	// TokenTTL is the access-token lifetime (ACCESS_TOKEN_EXPIRES_MIN).
	TokenTTL time.Duration
}

// devSecret is the fallback signing secret for local development only.
// main logs a warning whenever it is in use.
const devSecret = "dev-secret-do-not-use-in-prod"

// Load reads the environment and applies defaults.
func Load() *Config {
	return &Config{
		Port:      getenv("PORT", "8080"),
		MongoURI:  getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getenv("MONGO_DB", "jobtrackr"),
		JWTSecret: getenv("JWT_SECRET", devSecret),
		TokenTTL:  time.Duration(getenvInt("ACCESS_TOKEN_EXPIRES_MIN", 60)) * time.Minute,
	}
}

// UsingDevSecret reports whether the signing secret is the built-in default.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == devSecret
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
