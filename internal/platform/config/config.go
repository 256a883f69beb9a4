package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DatabaseURL           string
	JWTSecret             string
	Environment           string
	SchoolName            string
	SeedAdminUsername     string
	SeedAdminPassword     string
	SeedEmployeePassword  string
	RunMigrations         bool
	RunSeed               bool
	StorageDir            string
	MaxBodyBytes          int64
	CompletionRefreshSpec string
}

func Load() Config {
	// Best effort; real env vars win over .env entries.
	_ = godotenv.Load()

	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		Environment:           getEnv("APP_ENV", "development"),
		SchoolName:            getEnv("SCHOOL_NAME", "SMPN 3 PACET"),
		SeedAdminUsername:     getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword:     getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedEmployeePassword:  getEnv("SEED_EMPLOYEE_PASSWORD", ""),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:               getEnvBool("RUN_SEED", true),
		StorageDir:            getEnv("STORAGE_DIR", "storage/documents"),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 10485760)),
		CompletionRefreshSpec: getEnv("COMPLETION_REFRESH_SPEC", "0 5 * * *"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if strings.TrimSpace(c.SchoolName) == "" {
		return fmt.Errorf("SCHOOL_NAME must not be empty")
	}
	return nil
}
