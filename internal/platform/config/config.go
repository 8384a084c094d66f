package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the verification service reads from the
// environment so main stays lean.
type Config struct {
	Addr string

	// DefaultRegion is the ISO 3166-1 country used to interpret nationally
	// formatted phone numbers ("06 12 34 56 78"). Explicit configuration,
	// never inferred.
	DefaultRegion string

	// AllowedDomains, when non-empty, switches the email domain gate to
	// allowlist-only mode. DeniedDomains is consulted otherwise.
	AllowedDomains []string
	DeniedDomains  []string

	Directory DirectoryConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig

	Resend ResendThrottleConfig
}

// DirectoryConfig points at the authoritative identity directory admin API.
type DirectoryConfig struct {
	BaseURL    string
	SigningKey string
	Issuer     string
	Timeout    time.Duration
}

type PostgresConfig struct {
	DSN     string
	Timeout time.Duration
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ResendThrottleConfig bounds how often a confirmation resend may be
// requested for the same identity.
type ResendThrottleConfig struct {
	Limit  int
	Window time.Duration
}

// FromEnv builds a Config from environment variables with development
// defaults. Production deployments override every secret-bearing value.
func FromEnv() Config {
	cfg := Config{
		Addr:          envOr("IDCHECK_ADDR", ":8080"),
		DefaultRegion: envOr("IDCHECK_DEFAULT_REGION", "FR"),
		Directory: DirectoryConfig{
			BaseURL:    envOr("IDCHECK_DIRECTORY_URL", "http://localhost:9091"),
			SigningKey: envOr("IDCHECK_DIRECTORY_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:     envOr("IDCHECK_DIRECTORY_ISSUER", "idcheck"),
			Timeout:    envDurationOr("IDCHECK_DIRECTORY_TIMEOUT", 2*time.Second),
		},
		Postgres: PostgresConfig{
			DSN:     os.Getenv("IDCHECK_POSTGRES_DSN"),
			Timeout: envDurationOr("IDCHECK_POSTGRES_TIMEOUT", 2*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("IDCHECK_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("IDCHECK_KAFKA_BROKERS")),
			Topic:   envOr("IDCHECK_KAFKA_TOPIC", "idcheck.verification.events"),
		},
		Resend: ResendThrottleConfig{
			Limit:  3,
			Window: 15 * time.Minute,
		},
	}

	cfg.AllowedDomains = splitList(os.Getenv("IDCHECK_ALLOWED_DOMAINS"))
	cfg.DeniedDomains = splitList(envOr("IDCHECK_DENIED_DOMAINS", strings.Join(defaultDeniedDomains, ",")))

	return cfg
}

// defaultDeniedDomains blocks the usual disposable-inbox providers during
// registration. Overridable per environment.
var defaultDeniedDomains = []string{
	"mailinator.com",
	"yopmail.com",
	"guerrillamail.com",
	"10minutemail.com",
	"tempmail.com",
	"throwawaymail.com",
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
