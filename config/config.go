package config

import (
	"os"
	"time"
)

// Config is read once from the environment at startup. Only API_BASE_URL
// is required; everything else has a sensible single-node default.
type Config struct {
	ListenAddr     string
	APIBaseURL     string
	RequestTimeout time.Duration

	// RedisAddr selects the redis-backed session/cart stores when set;
	// otherwise the file/memory fallbacks are used.
	RedisAddr     string
	RedisPassword string

	SessionFile   string
	SnapshotDB    string
	CloudinaryURL string
}

func Load() Config {
	cfg := Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		RequestTimeout: 15 * time.Second,
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		SessionFile:    getEnv("SESSION_FILE", "data/session.json"),
		SnapshotDB:     getEnv("SNAPSHOT_DB", "data/snapshots.db"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		port := getEnv("REDIS_PORT", "6379")
		cfg.RedisAddr = host + ":" + port
	}
	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
