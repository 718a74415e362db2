package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix namespaces every blob key in the shared store.
	DefaultPrefix = "yt-transcript"
	// DefaultExpiry applies when Set is called without a positive expiry.
	DefaultExpiry = 24 * time.Hour

	envelopeVersion = "1.0"
	scanBatch       = 100
)

// envelope is what is actually stored under prefix:key.
// Expiry is enforced on read, so no Redis TTL is attached.
type envelope struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"timestamp"`
	Expiry    int64           `json:"expiry"`
	Version   string          `json:"version"`
}

type BlobCache struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewBlobCache namespaces keys under prefix, or DefaultPrefix when empty.
func NewBlobCache(client redis.UniversalClient, prefix string) *BlobCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &BlobCache{client: client, prefix: prefix, now: time.Now}
}

// WithClock replaces the clock used for timestamps and expiry checks.
func (c *BlobCache) WithClock(now func() time.Time) *BlobCache {
	c.now = now
	return c
}

var _ repository.IBlobCache = (*BlobCache)(nil)

func (c *BlobCache) key(k string) string {
	return c.prefix + ":" + k
}

func (c *BlobCache) Set(ctx context.Context, key string, value interface{}, expiry time.Duration) error {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value %q: %w", key, err)
	}
	data, err := json.Marshal(envelope{
		Value:     raw,
		Timestamp: c.now().UnixMilli(),
		Expiry:    expiry.Milliseconds(),
		Version:   envelopeVersion,
	})
	if err != nil {
		return fmt.Errorf("marshal cache envelope %q: %w", key, err)
	}
	if err := c.client.Set(ctx, c.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("set cache %q: %w", key, err)
	}
	return nil
}

// Get decodes a fresh entry into dst. Corrupt and expired entries are deleted and reported as a miss.
func (c *BlobCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get cache %q: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Value == nil {
		logger.GetLogger().WithField("key", key).Warn("Removing corrupt cache entry")
		return false, c.Remove(ctx, key)
	}
	if c.now().UnixMilli()-env.Timestamp > env.Expiry {
		return false, c.Remove(ctx, key)
	}
	if err := json.Unmarshal(env.Value, dst); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Removing cache entry of unexpected shape")
		return false, c.Remove(ctx, key)
	}
	return true, nil
}

func (c *BlobCache) Remove(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("remove cache %q: %w", key, err)
	}
	return nil
}

// Clear deletes every key under the namespace and leaves other keys alone.
func (c *BlobCache) Clear(ctx context.Context) error {
	var cursor uint64
	match := c.prefix + ":*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan cache namespace: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("clear cache namespace: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
