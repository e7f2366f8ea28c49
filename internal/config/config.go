package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	APIBaseURL      string
	UserAgent       string
	RedisURL        string
	CacheTTL        time.Duration
	StaleAfter      time.Duration
	UpstreamTimeout time.Duration
	RateLimitPerMin int
	DefaultPageSize int
	MaxPageSize     int
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		APIBaseURL:      getEnv("OSRS_API_BASE_URL", "https://prices.runescape.wiki/api/v1/osrs"),
		UserAgent:       getEnv("USER_AGENT", "fliptips-backend / contact: ops@fliptips.dev"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheTTL:        getEnvDuration("CACHE_TTL", 60*time.Second),
		StaleAfter:      getEnvDuration("STALE_AFTER", 120*time.Second),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 12*time.Second),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 120),
		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 25),
		MaxPageSize:     getEnvInt("MAX_PAGE_SIZE", 200),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(i) * time.Second
}
