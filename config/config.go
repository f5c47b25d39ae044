// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL  string
	Language string
	HTTPPort string

	RedisAddr    string
	CacheTTLMins int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	BrowserPool    int

	CSVOutputDir string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL:  getEnv("BASE_URL", "https://www.bergfex.at"),
		Language: getEnv("LANGUAGE", "at"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTLMins: getEnvInt("CACHE_TTL_MINS", 30),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "snow"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "snow123"),
		PostgresDB:       getEnv("POSTGRES_DB", "snow_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 10),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 100),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		BrowserPool:    getEnvInt("BROWSER_POOL", 2),

		CSVOutputDir: getEnv("CSV_OUTPUT_DIR", os.TempDir()),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
