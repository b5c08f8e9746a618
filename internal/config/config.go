package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv   string
	AppPort  string
	LogLevel string

	StorageDriver     string
	StorageNamespace  string
	StorageQuotaBytes int64
	SQLitePath        string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RateLimit  float64
	RateBurst  int
	CORSOrigin string

	// SeedFile, when set, is applied to the store at startup.
	SeedFile string
}

// LoadConfig reads the environment, after loading an optional .env file.
func LoadConfig(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		AppPort:           getEnv("APP_PORT", "8080"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		StorageDriver:     getEnv("STORAGE_DRIVER", DriverMemory),
		StorageNamespace:  getEnv("STORAGE_NAMESPACE", "souq"),
		StorageQuotaBytes: getInt64("STORAGE_QUOTA_BYTES", 0),
		SQLitePath:        getEnv("SQLITE_PATH", "souq.db"),
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            getEnv("DB_PORT", "5432"),
		RateLimit:         getFloat("RATE_LIMIT_RPS", 10),
		RateBurst:         int(getInt64("RATE_LIMIT_BURST", 20)),
		CORSOrigin:        getEnv("CORS_ORIGIN", "http://localhost:3000"),
		SeedFile:          os.Getenv("SEED_FILE"),
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
		if cfg.AppEnv == "development" {
			cfg.LogLevel = "debug"
		}
	}

	return cfg
}

// Validate checks that the selected storage driver has what it needs.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory:
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver: %q", c.StorageDriver)
	}

	if c.StorageQuotaBytes < 0 {
		return errors.New("STORAGE_QUOTA_BYTES cannot be negative")
	}
	return nil
}

// PostgresDSN renders the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	n, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return f
}
