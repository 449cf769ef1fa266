package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	GinMode       string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	JWTSecret     string
	JWTIssuer     string
	BcryptCost    int
	SeedOnStart   bool
	AdminEmail    string
	AdminPassword string
	LogLevel      string
	StaticDir     string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	return &Config{
		Port:          getEnv("APP_PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "taskuser"),
		DBPassword:    getEnv("DB_PASSWORD", "taskpassword"),
		DBName:        getEnv("DB_NAME", "task_tracker"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "task_tracker.db"),
		JWTSecret:     getEnv("JWT_SECRET", "default-secret-key-change-me"),
		JWTIssuer:     getEnv("JWT_ISSUER", "self"),
		BcryptCost:    getEnvInt("BCRYPT_COST", 10),
		SeedOnStart:   getEnvBool("SEED_ON_START", true),
		AdminEmail:    getEnv("ADMIN_EMAIL", "hexlet@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "qwerty"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StaticDir:     getEnv("STATIC_DIR", "static"),
	}
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", slog.String("key", key), slog.String("value", value))
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", slog.String("key", key), slog.String("value", value))
		return defaultValue
	}
	return b
}
