package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Extractor ExtractorConfig
	API       APIConfig
	Cache     CacheConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
}

type ExtractorConfig struct {
	Binary      string
	Workers     int
	QueueSize   int
	Timeout     time.Duration
	CookiesFile string
}

type APIConfig struct {
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitBurst    int
}

type CacheConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
	Profile          string
}

// AllowsAllOrigins reports whether the origin list is the "*" wildcard.
func (c CORSConfig) AllowsAllOrigins() bool {
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8000")
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	shutdownTimeout, err := getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Server.ShutdownTimeout = shutdownTimeout

	// Extractor configuration
	cfg.Extractor.Binary = getEnv("EXTRACTOR_BINARY", "yt-dlp")
	cfg.Extractor.Workers = getEnvInt("EXTRACTOR_WORKERS", 4)
	cfg.Extractor.QueueSize = getEnvInt("EXTRACTOR_QUEUE_SIZE", 64)
	cfg.Extractor.CookiesFile = getEnv("EXTRACTOR_COOKIES_FILE", "")
	extractorTimeout, err := getEnvDuration("EXTRACTOR_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	cfg.Extractor.Timeout = extractorTimeout
	if cfg.Extractor.Workers < 1 {
		return nil, fmt.Errorf("invalid EXTRACTOR_WORKERS: must be at least 1, got %d", cfg.Extractor.Workers)
	}
	if cfg.Extractor.QueueSize < 0 {
		return nil, fmt.Errorf("invalid EXTRACTOR_QUEUE_SIZE: must not be negative, got %d", cfg.Extractor.QueueSize)
	}

	// API configuration
	cfg.API.RateLimitEnabled = getEnvBool("RATE_LIMIT_ENABLED", false)
	cfg.API.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", 10)
	cfg.API.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 20)

	// Cache configuration
	cfg.Cache.Enabled = getEnvBool("CACHE_ENABLED", false)
	cfg.Cache.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Cache.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.Cache.RedisDB = getEnvInt("REDIS_DB", 0)
	cacheTTL, err := getEnvDuration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.Cache.TTL = cacheTTL

	// CORS configuration
	cfg.CORS = loadCORSConfig()

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(strings.TrimSpace(value), ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// loadCORSConfig loads CORS configuration based on profile or custom settings
func loadCORSConfig() CORSConfig {
	profile := getEnv("CORS_PROFILE", "open")

	switch profile {
	case "production":
		return getProductionCORSConfig()
	case "custom":
		return getCustomCORSConfig()
	default:
		return getOpenCORSConfig()
	}
}

// getOpenCORSConfig allows every origin for GET and POST with any header.
// Deployments facing the internet should switch to the production profile.
func getOpenCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled:          getEnvBool("CORS_ENABLED", true),
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Correlation-ID", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           getEnvInt("CORS_MAX_AGE", 86400),
		Profile:          "open",
	}
}

// getProductionCORSConfig returns restricted CORS settings for production
func getProductionCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled: getEnvBool("CORS_ENABLED", true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{
			"https://tiktokmaster-frontend.onrender.com",
		}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", []string{
			"GET", "POST",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{
			"Origin", "Content-Type", "Accept",
		}),
		ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
		Profile:          "production",
	}
}

// getCustomCORSConfig returns CORS settings from individual environment variables
func getCustomCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled: getEnvBool("CORS_ENABLED", true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", []string{
			"GET", "POST",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{
			"Origin", "Content-Type", "Accept",
		}),
		ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", []string{}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
		Profile:          "custom",
	}
}
