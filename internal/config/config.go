package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string
	OllamaURL    string
	OllamaModel  string
	JWTSecret    string
	LogLevel     string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./themeclash.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "llama3.2"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
