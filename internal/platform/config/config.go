package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. Values come from the
// environment so main stays lean and deployments stay twelve-factor.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Auth     Auth
	Catalog  Catalog
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// Postgres configures the document/link persistence. Empty DSN means the
// in-memory stores are used (development and tests).
type Postgres struct {
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Redis configures the session selection store. Empty URL disables Redis
// and selections stay process-local.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	SelectionTTL time.Duration
}

// Kafka configures the audit event sink. No brokers means audit events stay
// in the local audit store only.
type Kafka struct {
	Brokers    []string
	AuditTopic string
}

// Auth configures identity validation for incoming requests.
type Auth struct {
	JWTSigningKey  string
	AdminTokenHash string
}

// Catalog scopes the evidence catalog to one factory. Empty means a fresh
// random factory id per process, which only makes sense with the in-memory
// stores.
type Catalog struct {
	FactoryID string
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envOr("AUDITLINK_ADDR", ":8080"),
			ShutdownTimeout: envDuration("AUDITLINK_SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:  envDuration("AUDITLINK_REQUEST_TIMEOUT", 30*time.Second),
		},
		Postgres: Postgres{
			DSN:             os.Getenv("AUDITLINK_POSTGRES_DSN"),
			MaxOpenConns:    envInt("AUDITLINK_POSTGRES_MAX_OPEN_CONNS", 10),
			ConnMaxLifetime: envDuration("AUDITLINK_POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: Redis{
			URL:          os.Getenv("AUDITLINK_REDIS_URL"),
			PoolSize:     envInt("AUDITLINK_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("AUDITLINK_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("AUDITLINK_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("AUDITLINK_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("AUDITLINK_REDIS_WRITE_TIMEOUT", 3*time.Second),
			SelectionTTL: envDuration("AUDITLINK_SELECTION_TTL", 12*time.Hour),
		},
		Kafka: Kafka{
			Brokers:    envList("AUDITLINK_KAFKA_BROKERS"),
			AuditTopic: envOr("AUDITLINK_KAFKA_AUDIT_TOPIC", "auditlink.audit"),
		},
		Auth: Auth{
			// Development default, must be overridden in production.
			JWTSigningKey:  envOr("AUDITLINK_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			AdminTokenHash: os.Getenv("AUDITLINK_ADMIN_TOKEN_HASH"),
		},
		Catalog: Catalog{
			FactoryID: os.Getenv("AUDITLINK_FACTORY_ID"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
