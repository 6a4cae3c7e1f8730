package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	HTTPPort           string
	StoreDriver        string
	DataDir            string
	SQLitePath         string
	DiscordWebhookURL  string
	DiscordBotToken    string
	TruckersHubAPIKey  string
	TruckersHubBaseURL string
	HTTPClientTimeout  time.Duration
	RedisURL           string
	SubmitRateLimit    int
	SubmitRateWindow   time.Duration
	AdminToken         string
	TrustedProxies     []string
	VTCName            string
	StaffAvatarURL     string
	LogLevel           string
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		HTTPPort:           envOr("HTTP_PORT", "8080"),
		StoreDriver:        strings.ToLower(envOr("STORE_DRIVER", StoreFile)),
		DataDir:            envOr("DATA_DIR", "./data"),
		SQLitePath:         envOr("SQLITE_PATH", "./data/portal.db"),
		DiscordWebhookURL:  envOr("DISCORD_WEBHOOK_URL", ""),
		DiscordBotToken:    envOr("DISCORD_BOT_TOKEN", ""),
		TruckersHubAPIKey:  envOr("TRUCKERSHUB_API_KEY", ""),
		TruckersHubBaseURL: envOr("TRUCKERSHUB_BASE_URL", "https://api.truckershub.in/v1"),
		HTTPClientTimeout:  durationOr("HTTP_CLIENT_TIMEOUT", 10*time.Second),
		RedisURL:           envOr("REDIS_URL", ""),
		SubmitRateLimit:    intOr("SUBMIT_RATE_LIMIT", 5),
		SubmitRateWindow:   durationOr("SUBMIT_RATE_WINDOW", time.Hour),
		AdminToken:         envOr("ADMIN_TOKEN", ""),
		TrustedProxies:     listOr("TRUSTED_PROXIES"),
		VTCName:            envOr("VTC_NAME", "Tamil Pasanga VTC"),
		StaffAvatarURL:     envOr("STAFF_AVATAR_URL", ""),
		LogLevel:           strings.ToLower(envOr("LOG_LEVEL", "info")),
	}

	switch cfg.StoreDriver {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.HTTPClientTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive")
	}
	for _, proxy := range cfg.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return Config{}, fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func intOr(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// listOr splits a comma separated value; unset yields nil.
func listOr(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
