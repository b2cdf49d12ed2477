package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDebug       = "debug"
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	AppEnv     string
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// RabbitURL empty disables domain events and the activity consumer.
	RabbitURL string

	LogLevel     string
	LogFormat    string
	ErrorLogFile string

	FlashHashKey  string
	FlashBlockKey string

	MigrateOnStart bool
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	migrate, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIGRATE_ON_START: %w", err)
	}

	cfg := &Config{
		AppEnv:     strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		ServerPort: getEnv("SERVER_PORT", "5000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "fyyur"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RabbitURL: os.Getenv("RABBITMQ_URL"),

		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "text")),
		ErrorLogFile: getEnv("ERROR_LOG_FILE", "error.log"),

		FlashHashKey:  os.Getenv("FLASH_HASH_KEY"),
		FlashBlockKey: os.Getenv("FLASH_BLOCK_KEY"),

		MigrateOnStart: migrate,
	}
	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) IsDebug() bool {
	return c.AppEnv == EnvDebug
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.AppEnv {
	case EnvDebug, EnvDevelopment, EnvProduction:
	default:
		problems = append(problems, "APP_ENV must be one of: debug, development, production")
	}

	if port, err := strconv.Atoi(c.ServerPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, "SERVER_PORT must be between 1 and 65535")
	}
	if port, err := strconv.Atoi(c.DBPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, "DB_PORT must be between 1 and 65535")
	}
	if c.DBHost == "" || c.DBName == "" {
		problems = append(problems, "DB_HOST and DB_NAME are required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	// securecookie wants 32 or 64 byte hash keys and 16/24/32 byte block keys.
	if n := len(c.FlashHashKey); n != 0 && n != 32 && n != 64 {
		problems = append(problems, "FLASH_HASH_KEY must be 32 or 64 bytes")
	}
	if n := len(c.FlashBlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		problems = append(problems, "FLASH_BLOCK_KEY must be 16, 24 or 32 bytes")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
