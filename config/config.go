// Package config loads runtime settings from the environment.
// File: config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ------------------- configuration model -------------------

// Config is the full runtime configuration of the service.
type Config struct {
	Env         string   `yaml:"env" env:"APP_ENV" env-default:"development"`
	Port        int      `yaml:"port" env:"PORT" env-default:"3000"`
	AppURL      string   `yaml:"app_url" env:"APP_URL" env-default:"http://localhost:3000"`
	StaticDir   string   `yaml:"static_dir" env:"STATIC_DIR"`
	LogDir      string   `yaml:"log_dir" env:"LOG_DIR"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:","`

	// TrustedProxies may set X-Forwarded-For. Empty means the peer address
	// is always the client.
	TrustedProxies []string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES" env-separator:","`

	Database Database `yaml:"database"`
	Session  Session  `yaml:"session"`
	Redis    Redis    `yaml:"redis"`
	Login    Login    `yaml:"login"`
	Kafka    Kafka    `yaml:"kafka"`
	Metrics  Metrics  `yaml:"metrics"`
}

// Database holds connection settings. URL wins over the discrete fields.
type Database struct {
	Driver          string        `yaml:"driver" env:"DB_DRIVER" env-default:"mysql"`
	URL             string        `yaml:"url" env:"DATABASE_URL"`
	Host            string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"DB_PORT"`
	User            string        `yaml:"user" env:"DB_USER" env-default:"root"`
	Password        string        `yaml:"password" env:"DB_PASS"`
	Name            string        `yaml:"name" env:"DB_NAME" env-default:"festdb"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	AutoMigrate     bool          `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	PingTimeout     time.Duration `yaml:"ping_timeout" env:"DB_PING_TIMEOUT" env-default:"5s"`
}

// Session configures the admin session cookie and its backing store.
type Session struct {
	Name   string        `yaml:"name" env:"SESSION_NAME" env-default:"festsession"`
	Secret string        `yaml:"secret" env:"SESSION_SECRET"`
	Store  string        `yaml:"store" env:"SESSION_STORE" env-default:"cookie"`
	TTL    time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"2h"`
	// Secure is "true", "false" or "auto" (secure only in production).
	Secure string `yaml:"secure" env:"SESSION_SECURE" env-default:"auto"`
}

// Redis is only used when Session.Store is "redis".
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"festreg:session:"`
}

// Login throttles POST /admin/login per client address.
type Login struct {
	RatePerMinute float64 `yaml:"rate_per_minute" env:"LOGIN_RATE_PER_MIN" env-default:"10"`
	Burst         int     `yaml:"burst" env:"LOGIN_BURST" env-default:"5"`
}

// Kafka publishing is disabled when no brokers are configured.
type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"fest-registrations"`
}

// Metrics toggles the Prometheus endpoint and the CloudWatch publisher.
type Metrics struct {
	Enabled    bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	CloudWatch bool   `yaml:"cloudwatch" env:"CLOUDWATCH_ENABLED" env-default:"false"`
	Namespace  string `yaml:"namespace" env:"CLOUDWATCH_NAMESPACE" env-default:"FestRegistration"`
	Region     string `yaml:"region" env:"AWS_REGION"`
}

// ------------------- loading -------------------

// ErrMissingSecret is returned when production runs without SESSION_SECRET.
var ErrMissingSecret = errors.New("SESSION_SECRET must be set in production")

// Load reads an optional .env file, then the YAML file named by CONFIG_FILE
// (if any), then the process environment, which always wins.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	var err error
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot run.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Session.Store {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.Session.Store)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	if c.IsProduction() && c.Session.Secret == "" {
		return ErrMissingSecret
	}
	return nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SecureCookies resolves Session.Secure.
func (c *Config) SecureCookies() bool {
	if v, err := strconv.ParseBool(c.Session.Secure); err == nil {
		return v
	}
	return c.IsProduction()
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
