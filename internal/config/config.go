package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Convert ConvertConfig
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
}

// ConvertConfig carries defaults for the conversion pipeline.
type ConvertConfig struct {
	Workers    int
	OCREnabled bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "localhost"),
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			BodyLimitMB: getEnvAsInt("SERVER_BODY_LIMIT_MB", 32),
		},
		Convert: ConvertConfig{
			Workers:    getEnvAsInt("WORKERS", defaultWorkers()),
			OCREnabled: getEnvAsBool("OCR_ENABLED", true),
		},
	}
}

// defaultWorkers follows the CPU count, capped so wide machines do not
// hammer the disk with parallel PDF reads.
func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > 8 {
		n = 8
	}
	return n
}

// Address returns the listen address for the HTTP server.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
