package lrclib

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores fetched records.
type Cache interface {
	// Get returns the cached record for key. ok is false on a miss.
	Get(ctx context.Context, key string) (rec *Record, ok bool, err error)

	// Set stores rec under key.
	Set(ctx context.Context, key string, rec *Record) error
}

// CacheKey derives a stable key from a query. Names are case-folded and
// trimmed so trivially different spellings share an entry.
func CacheKey(q Query) string {
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return fmt.Sprintf("lyricsync:lrclib:%s|%s|%s|%d",
		norm(q.ArtistName), norm(q.TrackName), norm(q.AlbumName), q.DurationSec)
}

// RedisCache is a Cache backed by Redis. Records are stored as JSON.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to the Redis server at rawURL
// (redis:// or rediss://). A zero ttl keeps entries forever.
func NewRedisCache(rawURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opt), ttl: ttl}, nil
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) (*Record, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("decoding cached record: %w", err)
	}
	return &rec, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
