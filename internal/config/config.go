package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr           string         `yaml:"addr"`
	Env            string         `yaml:"env"`
	JWTSecret      string         `yaml:"jwt_secret"`
	APITimeout     time.Duration  `yaml:"timeout"`
	TokenDuration  time.Duration  `yaml:"token_duration"`
	BcryptCost     int            `yaml:"bcrypt_cost"`
	LogLevel       string         `yaml:"log_level"`
	Database       DatabaseConfig `yaml:"database"`
	MigrateOnStart bool           `yaml:"migrate_on_start"`
	Cookie         CookieConfig   `yaml:"cookie"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type CookieConfig struct {
	Name   string `yaml:"name"`
	Secure bool   `yaml:"secure"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("CAREERS_ADDR", ":8080"),
		Env:           getEnv("CAREERS_ENV", "development"),
		JWTSecret:     getEnv("CAREERS_JWT_SECRET", insecureJWTSecret),
		APITimeout:    getEnvDuration("CAREERS_TIMEOUT", 15*time.Second),
		TokenDuration: getEnvDuration("CAREERS_TOKEN_DURATION", 8*time.Hour),
		BcryptCost:    getEnvInt("CAREERS_BCRYPT_COST", 10),
		LogLevel:      getEnv("CAREERS_LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Driver:       getEnv("CAREERS_DATABASE_DRIVER", "sqlite"),
			DSN:          getEnv("CAREERS_DATABASE_DSN", "careers.db"),
			MaxOpenConns: getEnvInt("CAREERS_DATABASE_MAX_OPEN_CONNS", 10),
		},
		MigrateOnStart: getEnv("CAREERS_MIGRATE_ON_START", "true") == "true",
		Cookie: CookieConfig{
			Name:   getEnv("CAREERS_COOKIE_NAME", "careers_session"),
			Secure: getEnv("CAREERS_COOKIE_SECURE", "false") == "true",
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in a development env.
// CAREERS_ENV overrides the file value so tests and operators can force it.
func (c *Config) IsDevelopment() bool {
	env := c.Env
	if v := os.Getenv("CAREERS_ENV"); v != "" {
		env = v
	}
	env = strings.ToLower(env)
	return env == "" || env == "development" || env == "dev" || env == "test"
}

// Validate checks the configuration and fills defaults for optional fields.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.JWTSecret == insecureJWTSecret && !c.IsDevelopment() {
		return fmt.Errorf("jwt_secret uses the insecure default outside development")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.APITimeout <= 0 {
		c.APITimeout = 15 * time.Second
	}

	// bcrypt accepts 4..31; anything below 10 is only acceptable in tests.
	if c.BcryptCost == 0 {
		c.BcryptCost = 10
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost %d out of range", c.BcryptCost)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	case "":
		c.Database.Driver = "sqlite"
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}

	if c.Cookie.Name == "" {
		c.Cookie.Name = "careers_session"
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	case "":
		c.LogLevel = "info"
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	return nil
}

// Level maps LogLevel onto a slog level; unknown values log at info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}

	return def
}
