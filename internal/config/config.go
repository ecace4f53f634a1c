package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GinMode         string
	Port            string
	TZ              string
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPass          string
	DBName          string
	DBSSLMode       string
	SQLitePath      string
	LogLevel        string
	LogFormat       string
	RateLimitRPS    float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
}

// findEnvFile walks up from the working directory looking for name.
func findEnvFile(name string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads configuration from the environment. In debug mode a .env.dev
// file found in the working directory or any parent is loaded first;
// variables already set in the environment win.
func Load() *Config {
	if getenv("GIN_MODE", "debug") == "debug" {
		const filename = ".env.dev"
		if envPath, ok := findEnvFile(filename); ok {
			if err := godotenv.Load(envPath); err != nil {
				log.Printf("warning: could not load %s: %v", envPath, err)
			} else {
				log.Printf("loaded %s from %s", filename, envPath)
			}
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	cfg := &Config{
		GinMode:         getenv("GIN_MODE", "debug"),
		Port:            getenv("PORT", "8080"),
		TZ:              getenv("TZ", "UTC"),
		DBDriver:        getenv("DB_DRIVER", DriverPostgres),
		DBHost:          getenv("DB_HOST", "localhost"),
		DBPort:          getenv("DB_PORT", "5432"),
		DBUser:          getenv("DB_USER", "postgres"),
		DBPass:          getenv("DB_PASS", ""),
		DBName:          getenv("DB_NAME", "postgres"),
		DBSSLMode:       os.Getenv("DB_SSLMODE"),
		SQLitePath:      getenv("SQLITE_PATH", "authors.db"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       os.Getenv("LOG_FORMAT"),
		RateLimitRPS:    getenvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:  getenvInt("RATE_LIMIT_BURST", 20),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if cfg.LogFormat == "" {
		if cfg.GinMode == "debug" {
			cfg.LogFormat = "console"
		} else {
			cfg.LogFormat = "json"
		}
	}

	return cfg
}

func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid PORT %q", c.Port))
	}
	if c.DBDriver == DriverPostgres {
		if _, err := strconv.Atoi(c.DBPort); err != nil {
			errs = append(errs, fmt.Errorf("invalid DB_PORT %q", c.DBPort))
		}
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be at least 1"))
	}

	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warning: ignoring invalid %s=%q", key, v)
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("warning: ignoring invalid %s=%q", key, v)
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: ignoring invalid %s=%q", key, v)
	}
	return def
}
