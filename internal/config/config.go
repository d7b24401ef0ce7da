package config

import (
	"fmt"
	"os"
	"strconv"

	"messagely/internal/logger"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds the process configuration
type Config struct {
	Env                string
	ServerPort         string
	JWTSecret          string
	JWTExpirationHours int64 // 0 disables expiry
	BcryptWorkFactor   int
	StorageDriver      string
	DB                 *DBConfig // nil unless StorageDriver is postgres
}

// Load reads an optional .env file, then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug().Msg("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Env:           getEnv("APP_ENV", "production"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		StorageDriver: getEnv("STORAGE_DRIVER", StoragePostgres),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	var err error
	if cfg.JWTExpirationHours, err = getInt64("JWT_EXPIRATION_HOURS", 0); err != nil {
		return nil, err
	}
	workFactor, err := getInt64("BCRYPT_WORK_FACTOR", int64(bcrypt.DefaultCost))
	if err != nil {
		return nil, err
	}
	cfg.BcryptWorkFactor = int(workFactor)

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DB, err = LoadDBConfig(); err != nil {
			return nil, err
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want %q or %q)", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
