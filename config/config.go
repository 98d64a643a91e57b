package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pool-engine-go/logging"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Auth     AuthConfig     `json:"auth"`
	App      AppConfig      `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host        string `json:"host"`
	Port        string `json:"port"`
	Environment string `json:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string `json:"jwt_secret"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	CurrentSeason int  `json:"current_season"`
	IsDevelopment bool `json:"is_development"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine in production
		logging.Warnf("Could not load .env file: %v", err)
	}

	environment := getEnv("ENVIRONMENT", "development")
	isDevelopment := strings.ToLower(environment) == "development"

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "127.0.0.1"),
			Port:        getEnv("SERVER_PORT", "8080"),
			Environment: environment,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", "poolapp"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "pool_engine"),
			Timeout:  getEnvDuration("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", ""),
			EnableColor: getEnvBool("LOG_COLOR", true),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		App: AppConfig{
			CurrentSeason: getEnvInt("CURRENT_SEASON", time.Now().Year()),
			IsDevelopment: isDevelopment,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration values that have no sane default
func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if !c.App.IsDevelopment {
			return fmt.Errorf("JWT_SECRET must be set outside development")
		}
		c.Auth.JWTSecret = "dev-only-secret"
		logging.Warnf("JWT_SECRET not set, using insecure development default")
	}
	if c.App.CurrentSeason < 2000 {
		return fmt.Errorf("CURRENT_SEASON %d is not a plausible season", c.App.CurrentSeason)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		logging.Warnf("Invalid integer for %s: %q, using default %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		logging.Warnf("Invalid boolean for %s: %q, using default %t", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		logging.Warnf("Invalid duration for %s: %q, using default %s", key, value, defaultValue)
	}
	return defaultValue
}
