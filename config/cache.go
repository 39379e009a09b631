package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultCacheTTLSeconds keeps synthesized audio for 7 days.
const DefaultCacheTTLSeconds = 604800

type CacheConfig struct {
	Enabled       bool
	TTLSeconds    int
	RedisHost     string
	RedisPort     string
	RedisPassword string
}

func GetCacheConfig() (*CacheConfig, error) {
	enabled := os.Getenv("ENABLE_CACHE") != "false"

	ttlSeconds := DefaultCacheTTLSeconds
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("CACHE_TTL must be a positive integer, got %q", raw)
		}
		ttlSeconds = parsed
	}

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}

	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	return &CacheConfig{
		Enabled:       enabled,
		TTLSeconds:    ttlSeconds,
		RedisHost:     host,
		RedisPort:     port,
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}, nil
}

func (c *CacheConfig) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
