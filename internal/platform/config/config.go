// Package config builds runtime configuration from environment variables so
// main stays lean. Every knob has a development default; production overrides
// via CABINET_* variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures the process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTTTL        time.Duration

	// Provider holds the identity-provider endpoint settings. Empty APIKey
	// means the provider is unconfigured and the directory is authoritative.
	Provider Provider

	// Redis backs the session and profile stores when set; empty URL keeps
	// everything in memory.
	Redis Redis

	// PostgresURL backs the profile document store when set. Redis wins when
	// both are configured.
	PostgresURL string

	// KafkaBrokers enables the Kafka notification publisher when non-empty.
	KafkaBrokers string
	KafkaTopic   string

	// AllowDemoFallback keeps the permissive demo login for unmatched
	// credentials after a provider rejection.
	AllowDemoFallback bool

	// MockLatency delays directory-backed operations to emulate a remote
	// identity service.
	MockLatency time.Duration

	// RestoreTimeout bounds the startup wait for the provider's first
	// auth-state report.
	RestoreTimeout time.Duration
}

// Provider is the identity-provider endpoint configuration.
type Provider struct {
	Endpoint string
	APIKey   string
}

// Redis is the redis connection configuration.
type Redis struct {
	URL string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:          envOr("CABINET_ADDR", ":8080"),
		JWTSigningKey: envOr("CABINET_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     envOr("CABINET_JWT_ISSUER", "cabinet"),
		JWTTTL:        envDuration("CABINET_JWT_TTL", 24*time.Hour),
		Provider: Provider{
			Endpoint: envOr("CABINET_PROVIDER_ENDPOINT", "https://identitytoolkit.googleapis.com"),
			APIKey:   os.Getenv("CABINET_PROVIDER_API_KEY"),
		},
		Redis:             Redis{URL: os.Getenv("CABINET_REDIS_URL")},
		PostgresURL:       os.Getenv("CABINET_POSTGRES_URL"),
		KafkaBrokers:      os.Getenv("CABINET_KAFKA_BROKERS"),
		KafkaTopic:        envOr("CABINET_KAFKA_TOPIC", "cabinet.session.events"),
		AllowDemoFallback: envBool("CABINET_ALLOW_DEMO_FALLBACK", true),
		MockLatency:       envDuration("CABINET_MOCK_LATENCY", 800*time.Millisecond),
		RestoreTimeout:    envDuration("CABINET_RESTORE_TIMEOUT", 2*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
