package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tts-batch-api/application/ports/outbound"
	"tts-batch-api/config"
	"tts-batch-api/domain"
)

// redisAudioCache stores synthesized audio in Redis with a TTL. When caching
// is disabled by configuration the store is never contacted at all, so the
// disabled path stays observable as DISABLED rather than a permanent miss.
type redisAudioCache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
	logger  outbound.LoggerPort
}

func NewRedisAudioCache(client *redis.Client, cacheConfig *config.CacheConfig, logger outbound.LoggerPort) outbound.AudioCachePort {
	return &redisAudioCache{
		client:  client,
		enabled: cacheConfig.Enabled,
		ttl:     time.Duration(cacheConfig.TTLSeconds) * time.Second,
		logger:  logger,
	}
}

func (c *redisAudioCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !c.enabled {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	return data, true, nil
}

func (c *redisAudioCache) Set(ctx context.Context, key string, data []byte) error {
	if !c.enabled {
		return nil
	}

	// SET with EX is atomic, no compare-and-set precondition: concurrent
	// identical misses overwrite each other with byte-identical content.
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	c.logger.InfoWithFields("cached audio", map[string]interface{}{
		"key":         key,
		"bytes":       len(data),
		"ttl_seconds": int(c.ttl.Seconds()),
	})

	return nil
}

func (c *redisAudioCache) Enabled() bool {
	return c.enabled
}
