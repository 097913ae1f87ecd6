// Package config centralizes environment-driven configuration so main stays
// lean.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	// PostgresURL selects the postgres-backed stores when set; empty means
	// in-memory stores (development, tests).
	PostgresURL string

	// RedisURL enables the sweep leader lock when set.
	RedisURL string

	// KafkaBrokers enables the Kafka notification publisher when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	JWTSigningKey string
	JWTIssuer     string
	ReviewerTTL   time.Duration

	// AdminSecretHash is the bcrypt hash of the shared reviewer secret
	// exchanged for a token at /admin/login.
	AdminSecretHash string

	SweepInterval     time.Duration
	ExpiryWarnWindow  time.Duration
	MinimumHourlyRate float64
}

// FromEnv builds a Server config from environment variables.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:              envOr("VETGATE_ADDR", ":8080"),
		PostgresURL:       os.Getenv("VETGATE_POSTGRES_URL"),
		RedisURL:          os.Getenv("VETGATE_REDIS_URL"),
		KafkaTopic:        envOr("VETGATE_KAFKA_TOPIC", "compliance.notifications"),
		JWTIssuer:         envOr("VETGATE_JWT_ISSUER", "vetgate"),
		AdminSecretHash:   os.Getenv("VETGATE_ADMIN_SECRET_HASH"),
		SweepInterval:     time.Hour,
		ExpiryWarnWindow:  30 * 24 * time.Hour,
		MinimumHourlyRate: 10.0,
		ReviewerTTL:       time.Hour,
	}

	if brokers := os.Getenv("VETGATE_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	cfg.JWTSigningKey = os.Getenv("VETGATE_JWT_SIGNING_KEY")
	if cfg.JWTSigningKey == "" {
		// Development default; must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	var err error
	if cfg.SweepInterval, err = envDuration("VETGATE_SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return Server{}, err
	}
	if cfg.ExpiryWarnWindow, err = envDuration("VETGATE_EXPIRY_WARN_WINDOW", cfg.ExpiryWarnWindow); err != nil {
		return Server{}, err
	}
	if cfg.ReviewerTTL, err = envDuration("VETGATE_REVIEWER_TOKEN_TTL", cfg.ReviewerTTL); err != nil {
		return Server{}, err
	}
	if raw := os.Getenv("VETGATE_MINIMUM_HOURLY_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Server{}, fmt.Errorf("parse VETGATE_MINIMUM_HOURLY_RATE: %w", err)
		}
		cfg.MinimumHourlyRate = rate
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
