package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ev-marketplace/utils"

	"github.com/joho/godotenv"
)

// Profile store backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Config holds every tunable of the client, the CLI and the stub backend.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	LogLevel       string

	BidPollInterval time.Duration

	ProfileStore  string
	ProfilePath   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisSlot     string

	AIBaseURL string
	AIModel   string
	AIAPIKey  string

	ImageMaxBytes     int
	ImageMaxDimension int

	ServerPort string
	JWTSecret  string
	TokenTTL   time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Warn("could not load .env file", map[string]any{"error": err.Error()})
	}

	cfg := &Config{
		APIBaseURL:     getEnvOrDefault("EVM_API_BASE_URL", "http://localhost:8080/api"),
		RequestTimeout: getDuration("EVM_REQUEST_TIMEOUT", 15*time.Second),
		LogLevel:       getEnvOrDefault("EVM_LOG_LEVEL", "info"),

		BidPollInterval: getDuration("EVM_BID_POLL_INTERVAL", 3*time.Second),

		ProfileStore:  getEnvOrDefault("EVM_PROFILE_STORE", StoreFile),
		ProfilePath:   getEnvOrDefault("EVM_PROFILE_PATH", defaultProfilePath()),
		RedisAddr:     getEnvOrDefault("EVM_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("EVM_REDIS_PASSWORD"),
		RedisDB:       getInt("EVM_REDIS_DB", 0),
		RedisSlot:     getEnvOrDefault("EVM_REDIS_SLOT", "default"),

		AIBaseURL: getEnvOrDefault("EVM_AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AIModel:   getEnvOrDefault("EVM_AI_MODEL", "gemini-1.5-flash"),
		AIAPIKey:  os.Getenv("EVM_AI_API_KEY"),

		ImageMaxBytes:     getInt("EVM_IMAGE_MAX_BYTES", 300*1024),
		ImageMaxDimension: getInt("EVM_IMAGE_MAX_DIMENSION", 1280),

		ServerPort: getPort(),
		JWTSecret:  getEnvOrDefault("EVM_JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:   getDuration("EVM_TOKEN_TTL", 24*time.Hour),
	}

	if cfg.BidPollInterval <= 0 {
		utils.Warn("non-positive bid poll interval, using default", map[string]any{"value": cfg.BidPollInterval.String()})
		cfg.BidPollInterval = 3 * time.Second
	}
	if cfg.ProfileStore != StoreFile && cfg.ProfileStore != StoreRedis {
		utils.Warn("unknown profile store, using file", map[string]any{"value": cfg.ProfileStore})
		cfg.ProfileStore = StoreFile
	}
	return cfg
}

func defaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".evmarket", "profile.json")
	}
	return filepath.Join(home, ".evmarket", "profile.json")
}

// getPort returns the stub backend address from PORT, defaulting to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return ":" + p
	}
	return ":8080"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		utils.Warn("invalid duration in environment, using default", map[string]any{"key": key, "value": raw})
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		utils.Warn("invalid integer in environment, using default", map[string]any{"key": key, "value": raw})
		return defaultValue
	}
	return n
}
