// Package config loads process configuration from the environment once at start-up.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Directory backends understood by cmd/server.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config is the registration gate's full configuration.
type Config struct {
	Server       Server
	Allowlist    Allowlist
	Registration Registration
	Directory    Directory
	Audit        Audit
	Logging      Logging
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"REGGUARD_ADDR" env-default:":8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Allowlist points at the external domain allowlist service. An empty
// endpoint is valid and makes every check fail closed.
type Allowlist struct {
	Endpoint string `env:"MOCK_API_URL"`
}

// Registration holds realm-level registration options.
type Registration struct {
	EmailAsUsername bool `env:"REGISTRATION_EMAIL_AS_USERNAME" env-default:"false"`
}

// Directory selects where existing users are looked up.
type Directory struct {
	Backend     string `env:"DIRECTORY_BACKEND" env-default:"memory"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR" env-default:"localhost:6379"`
}

// Audit configures optional Kafka publishing of registration events.
type Audit struct {
	KafkaBrokers []string `env:"AUDIT_KAFKA_BROKERS" env-separator:","`
	KafkaTopic   string   `env:"AUDIT_KAFKA_TOPIC" env-default:"regguard.registrations"`
}

// KafkaEnabled reports whether any broker is configured.
func (a Audit) KafkaEnabled() bool {
	return len(a.KafkaBrokers) > 0
}

// Logging configures the slog handler.
type Logging struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// Load reads Config from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Directory.Backend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.Directory.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s directory backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown directory backend %q", c.Directory.Backend)
	}
	return nil
}

// Mock configures cmd/allowlist-mock.
type Mock struct {
	Addr           string   `env:"MOCK_ADDR" env-default:":8081"`
	AllowedDomains []string `env:"MOCK_ALLOWED_DOMAINS" env-separator:"," env-default:"productdock.com,codecentric.com"`
	Logging        Logging
}

// LoadMock reads Mock from environment variables.
func LoadMock() (*Mock, error) {
	var cfg Mock
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}
