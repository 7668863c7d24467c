package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all gateway configuration
type Config struct {
	Server   ServerConfig
	Hospital HospitalConfig
	Redis    RedisConfig
	Session  SessionConfig
	OTEL     OTELConfig
	Env      string
}

// ServerConfig holds the gateway's own HTTP listener configuration
type ServerConfig struct {
	Host string
	Port int
}

// HospitalConfig holds upstream hospital API configuration
type HospitalConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// RedisConfig holds Redis configuration for the session store and event bus
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig controls durable session behaviour
type SessionConfig struct {
	TTL        time.Duration
	CookieName string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Hospital: HospitalConfig{
			BaseURL:        getEnv("HOSPITAL_API_URL", "http://localhost:8085/api"),
			RequestTimeout: getEnvAsDuration("HOSPITAL_API_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			TTL:        getEnvAsDuration("SESSION_TTL", 12*time.Hour),
			CookieName: getEnv("SESSION_COOKIE", "hms_session"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "hms-gateway"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Env: getEnv("APP_ENV", "development"),
	}

	if cfg.Hospital.BaseURL == "" {
		return nil, fmt.Errorf("HOSPITAL_API_URL must not be empty")
	}
	return cfg, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ListenAddr returns the gateway listen address
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
