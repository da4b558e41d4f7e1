package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port         string
	GinMode      string
	JWTSecret    string
	TokenTTL     time.Duration
	AllowOrigins []string
	Database     Database
}

type Database struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLitePath is a file path or a "file:" URI understood by the sqlite driver.
	SQLitePath string

	LogLevel      string
	SlowThreshold time.Duration
	MaxIdleConns  int
	MaxOpenConns  int
	ConnLifetime  time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() (Config, error) {
	cfg := Config{
		Port:         envString("PORT", "8080"),
		GinMode:      envString("GIN_MODE", "debug"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     envDuration("TOKEN_TTL", 72*time.Hour),
		AllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),
		Database: Database{
			Driver:        envString("DB_DRIVER", DriverPostgres),
			URL:           os.Getenv("DATABASE_URL"),
			Host:          envString("DB_HOST", "localhost"),
			Port:          envString("DB_PORT", "5432"),
			User:          os.Getenv("DB_USER"),
			Password:      os.Getenv("DB_PASSWORD"),
			Name:          envString("DB_NAME", "factfeed"),
			SSLMode:       envString("DB_SSLMODE", "disable"),
			SQLitePath:    envString("SQLITE_PATH", "factfeed.db"),
			LogLevel:      envString("DB_LOG_LEVEL", "warn"),
			SlowThreshold: envDuration("DB_SLOW_THRESHOLD", time.Second),
			MaxIdleConns:  envInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:  envInt("DB_MAX_OPEN_CONNS", 100),
			ConnLifetime:  envDuration("DB_CONN_LIFETIME", time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", c.Database.Driver)
	}
	return nil
}

// DSN returns the postgres connection string, preferring DATABASE_URL.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
