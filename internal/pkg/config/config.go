package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store backends.
const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Remote  RemoteConfig
	Session SessionConfig
	Audit   AuditConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type RemoteConfig struct {
	URL     string        `env:"REMOTE_API_URL,     default=http://localhost:8081"`
	Timeout time.Duration `env:"REMOTE_API_TIMEOUT, default=15s"`
}

type SessionConfig struct {
	Backend      string        `env:"SESSION_BACKEND,    default=redis"`
	CookieName   string        `env:"SESSION_COOKIE,     default=campuscard.session"`
	TTL          time.Duration `env:"SESSION_TTL,        default=24h"`
	CacheSize    int           `env:"SESSION_CACHE_SIZE, default=10000"`
	CookieSecure bool          `env:"COOKIE_SECURE,      default=false"`

	LoginRateLimit float64       `env:"LOGIN_RATE_LIMIT, default=0.2"`
	LoginRateBurst int           `env:"LOGIN_RATE_BURST, default=5"`
	ReviewLockTTL  time.Duration `env:"REVIEW_LOCK_TTL,  default=10s"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB,  default=campuscard_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Session.Backend = strings.ToLower(strings.TrimSpace(c.Session.Backend))
	switch c.Session.Backend {
	case BackendRedis, BackendMemory:
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("SESSION_BACKEND=mongo requires MONGO_URI")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be one of redis, mongo, memory (got %q)", c.Session.Backend)
	}
	if c.Remote.URL == "" {
		return fmt.Errorf("REMOTE_API_URL is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}
