package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Supported values for DB_DIALECT.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
	DialectMemory   = "memory"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port    string `env:"PORT" envDefault:"5001"`
	Dialect string `env:"DB_DIALECT" envDefault:"postgres"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	DBMaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns        int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBTimeout         time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"users.db"`

	BcryptCost           int      `env:"BCRYPT_COST" envDefault:"10"`
	CORSOrigins          []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ExposeInternalErrors bool     `env:"EXPOSE_INTERNAL_ERRORS" envDefault:"false"`
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.Dialect = strings.ToLower(strings.TrimSpace(cfg.Dialect))
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.CORSOrigins = cleanList(cfg.CORSOrigins)

	switch cfg.Dialect {
	case DialectPostgres, DialectSQLite, DialectMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DIALECT %q", cfg.Dialect)
	}
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT must not be empty")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.DBTimeout <= 0 {
		return Config{}, fmt.Errorf("DB_TIMEOUT must be positive")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PostgresURL returns DATABASE_URL, or a URL assembled from the DB_* parts.
func (c Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.DBSSLMode}}.Encode()
	}
	return u.String()
}

func cleanList(input []string) []string {
	var out []string
	for _, part := range input {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
