package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration for the verification service.
type Server struct {
	Addr              string
	PostgresDSN       string
	RedisURL          string
	KafkaBrokers      []string
	KafkaAuditTopic   string
	ScoringConfig     string
	CommonNamesFile   string
	JWTSigningKey     string
	DirectoryCacheTTL time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Empty PostgresDSN/RedisURL/KafkaBrokers mean the corresponding
// backing service is not wired and an in-process fallback is used.
func FromEnv() Server {
	cfg := Server{
		Addr:              envOr("VERINAME_ADDR", ":8080"),
		PostgresDSN:       os.Getenv("VERINAME_POSTGRES_DSN"),
		RedisURL:          os.Getenv("VERINAME_REDIS_URL"),
		KafkaAuditTopic:   envOr("VERINAME_KAFKA_AUDIT_TOPIC", "veriname.audit"),
		ScoringConfig:     os.Getenv("VERINAME_SCORING_CONFIG"),
		CommonNamesFile:   os.Getenv("VERINAME_NAMES_FILE"),
		JWTSigningKey:     envOr("VERINAME_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		DirectoryCacheTTL: 24 * time.Hour,
	}

	if brokers := os.Getenv("VERINAME_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if ttl := os.Getenv("VERINAME_DIRECTORY_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.DirectoryCacheTTL = d
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
