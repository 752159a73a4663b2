// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	GitHub GitHubConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// GitHubConfig holds upstream GitHub API configuration. The user agent is
// the fixed client identifier sent on every upstream call.
type GitHubConfig struct {
	APIBaseURL     string
	UserAgent      string
	TimeoutSeconds int
}

// CORSConfig holds the allowed browser origins.
type CORSConfig struct {
	AllowOrigins []string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional, so we don't return error if it doesn't exist
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 120),
		},
		GitHub: GitHubConfig{
			APIBaseURL:     getEnv("GITHUB_API_BASE_URL", "https://api.github.com/"),
			UserAgent:      getEnv("GITHUB_USER_AGENT", "repoforge-core"),
			TimeoutSeconds: getEnvAsInt("GITHUB_TIMEOUT", 30),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsSlice("CORS_ALLOW_ORIGINS", ",", []string{"*"}),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.GitHub.APIBaseURL == "" {
		return fmt.Errorf("GITHUB_API_BASE_URL cannot be empty")
	}
	if !strings.HasSuffix(c.GitHub.APIBaseURL, "/") {
		return fmt.Errorf("GITHUB_API_BASE_URL must end with a trailing slash")
	}
	if c.GitHub.UserAgent == "" {
		return fmt.Errorf("GITHUB_USER_AGENT cannot be empty")
	}
	if c.GitHub.TimeoutSeconds <= 0 {
		return fmt.Errorf("GITHUB_TIMEOUT must be positive")
	}
	return nil
}

// GetServerAddress returns the server address.
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// UpstreamTimeout returns the upstream HTTP timeout as a duration.
func (g *GitHubConfig) UpstreamTimeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// getEnv gets an environment variable with a fallback value.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value.
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getEnvAsSlice gets an environment variable as slice with a fallback value.
func getEnvAsSlice(key, separator string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, separator)
	}
	return fallback
}
