package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the route server
type Config struct {
	// Server
	ServerPort   string
	AllowOrigins []string // "*" allows every origin

	// Network source
	NetworkFormat string
	NetworkSource string

	// Queries
	QueryTimeout time.Duration
}

// Load reads configuration from the environment, after an optional .env file
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		AllowOrigins:  splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		NetworkFormat: strings.ToLower(getEnv("NETWORK_FORMAT", "csv")),
		NetworkSource: getEnv("NETWORK_SOURCE", "data"),
		QueryTimeout:  time.Duration(getEnvInt("QUERY_TIMEOUT_MS", 2000)) * time.Millisecond,
	}

	if cfg.QueryTimeout <= 0 {
		log.Printf("WARNING: QUERY_TIMEOUT_MS must be positive, using 2000")
		cfg.QueryTimeout = 2 * time.Second
	}

	return cfg
}

func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.AllowOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowOrigins) == 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
