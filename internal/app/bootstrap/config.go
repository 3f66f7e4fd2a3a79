package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the portal API.
// It merges file defaults and environment overrides to support both local and
// deployed runs.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	// BackendBaseURL is the system of record. Its absence is a fatal
	// configuration error: every façade depends on it.
	BackendBaseURL      string
	BackendServiceToken string

	// GatewayBaseURL/GatewaySecretKey configure the payment gateway. An empty
	// secret disables payment verification; submissions then proceed
	// unverified with a logged warning.
	GatewayBaseURL   string
	GatewaySecretKey string

	// One of JWTSharedSecret (HS256) or JWTPublicKeyPEM (RS256) enables
	// session-token verification. Both absent means no identity resolution.
	JWTSharedSecret string
	JWTPublicKeyPEM string

	// Optional collaborators.
	RedisURL     string
	DatabaseURL  string
	KafkaBrokers []string
	KafkaTopic   string

	AllowedOrigins []string

	VerifyTimeout time.Duration
	SubmitTimeout time.Duration
	FollowerWait  time.Duration
	ClaimTTL      time.Duration

	MaxDBConns         int32
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Backend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"backend"`
	Gateway struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"gateway"`
	Dependencies struct {
		PostgresURL  string   `yaml:"postgres_url"`
		RedisURL     string   `yaml:"redis_url"`
		KafkaBrokers []string `yaml:"kafka_brokers"`
		KafkaTopic   string   `yaml:"kafka_topic"`
	} `yaml:"dependencies"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific
// overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:          "student-portal-api",
		HTTPPort:           8080,
		GRPCPort:           9090,
		GatewayBaseURL:     "https://api.paystack.co",
		KafkaTopic:         "portal.enrollments",
		AllowedOrigins:     []string{"*"},
		VerifyTimeout:      10 * time.Second,
		SubmitTimeout:      15 * time.Second,
		FollowerWait:       30 * time.Second,
		ClaimTTL:           time.Minute,
		MaxDBConns:         10,
		OutboxPollInterval: 2 * time.Second,
		OutboxBatchSize:    100,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Backend.BaseURL != "" {
			cfg.BackendBaseURL = f.Backend.BaseURL
		}
		if f.Gateway.BaseURL != "" {
			cfg.GatewayBaseURL = f.Gateway.BaseURL
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = f.Dependencies.KafkaBrokers
		}
		if f.Dependencies.KafkaTopic != "" {
			cfg.KafkaTopic = f.Dependencies.KafkaTopic
		}
		if len(f.CORS.AllowedOrigins) > 0 {
			cfg.AllowedOrigins = f.CORS.AllowedOrigins
		}
	}

	cfg.BackendBaseURL = envOrDefault("BACKEND_BASE_URL", cfg.BackendBaseURL)
	cfg.BackendServiceToken = envOrDefault("BACKEND_SERVICE_TOKEN", cfg.BackendServiceToken)
	cfg.GatewayBaseURL = envOrDefault("GATEWAY_BASE_URL", cfg.GatewayBaseURL)
	cfg.GatewaySecretKey = envOrDefault("GATEWAY_SECRET_KEY", cfg.GatewaySecretKey)
	cfg.JWTSharedSecret = envOrDefault("JWT_SHARED_SECRET", cfg.JWTSharedSecret)
	cfg.JWTPublicKeyPEM = envOrDefault("JWT_PUBLIC_KEY_PEM", cfg.JWTPublicKeyPEM)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopic = envOrDefault("KAFKA_TOPIC", cfg.KafkaTopic)
	cfg.AllowedOrigins = envCSV("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)

	cfg.VerifyTimeout = time.Duration(envInt("VERIFY_TIMEOUT_SECONDS", int(cfg.VerifyTimeout.Seconds()))) * time.Second
	cfg.SubmitTimeout = time.Duration(envInt("SUBMIT_TIMEOUT_SECONDS", int(cfg.SubmitTimeout.Seconds()))) * time.Second
	cfg.FollowerWait = time.Duration(envInt("FOLLOWER_WAIT_SECONDS", int(cfg.FollowerWait.Seconds()))) * time.Second
	cfg.ClaimTTL = time.Duration(envInt("CLAIM_TTL_SECONDS", int(cfg.ClaimTTL.Seconds()))) * time.Second
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second

	if cfg.BackendBaseURL == "" {
		return Config{}, fmt.Errorf("missing BACKEND_BASE_URL")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envCSV parses comma-separated env vars and removes empty segments.
func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	if len(parts) == 0 {
		return fallback
	}
	return parts
}
